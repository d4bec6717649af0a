// Package seed holds the demo catalogue the stores start from: three pets,
// three approved drivers, two rides in flight, and the incidents, tickets
// and chat around them. Every function returns fresh copies.
package seed

import (
	"time"

	"gopet/internal/models"
)

// DriverHistory is the history every seeded driver starts with.
var DriverHistory = []string{models.HistoryApplicationReceived, "Checklist validado"}

func Pets() []*models.Pet {
	return []*models.Pet{
		{
			ID:               "pet_1",
			Name:             "Luna",
			Species:          models.SpeciesCat,
			Size:             models.PetSizeSmall,
			WeightKg:         4.2,
			Temperament:      "calma",
			CrateRequired:    true,
			VaccinesUpToDate: true,
			Notes:            "Prefere cobertor fechado",
		},
		{
			ID:               "pet_2",
			Name:             "Thor",
			Species:          models.SpeciesDog,
			Size:             models.PetSizeLarge,
			WeightKg:         36,
			Temperament:      "sociável",
			CrateRequired:    false,
			VaccinesUpToDate: true,
			Needs:            []string{"Cinto peitoral para porte grande"},
		},
		{
			ID:               "pet_3",
			Name:             "Frida",
			Species:          models.SpeciesDog,
			Size:             models.PetSizeMedium,
			WeightKg:         18,
			Temperament:      "ansiosa com estranhos",
			CrateRequired:    true,
			VaccinesUpToDate: false,
			Notes:            "Medicação às 11h",
		},
	}
}

// Drivers returns the seeded drivers, newest first. drv_1 is the most
// recently created so it is the first ONLINE match.
func Drivers(now time.Time) []*models.Driver {
	drivers := []*models.Driver{
		{
			ID:                  "drv_1",
			Name:                "Camila Duarte",
			Email:               "camila.duarte@gopet.com",
			Phone:               "+55 11 99999-1111",
			LicenseNumber:       "1234567890",
			LicenseExpiresAt:    "2027-03-15",
			LicenseDocumentURL:  "https://example.com/docs/camila-cnh.jpg",
			ProfilePhotoURL:     "https://example.com/photos/camila.jpg",
			TrainingCompletedAt: "2024-08-10",
			Rating:              4.94,
			CompletedRuns:       1268,
			Equipments:          []string{"Caixa universal", "Cinto pet M/G", "Spray enzimático", "Manta térmica"},
			Status:              models.OperationalStatusOnline,
			ETAMinutes:          8,
			Vehicle:             models.Vehicle{Model: "Doblò Adventure 2022", Plate: "FHP2B19", Year: "2022"},
			Categories:          []models.RideCategory{models.RideCategoryPlus, models.RideCategoryVet, models.RideCategorySUV},
			CreatedAt:           now.Add(-1 * time.Hour),
		},
		{
			ID:                  "drv_2",
			Name:                "Rafael Nunes",
			Email:               "rafael.nunes@gopet.com",
			Phone:               "+55 11 98888-2222",
			LicenseNumber:       "9876543210",
			LicenseExpiresAt:    "2026-11-02",
			LicenseDocumentURL:  "https://example.com/docs/rafael-cnh.jpg",
			ProfilePhotoURL:     "https://example.com/photos/rafael.jpg",
			TrainingCompletedAt: "2024-06-05",
			Rating:              4.81,
			CompletedRuns:       842,
			Equipments:          []string{"Cinto pet P", "Forro impermeável", "Kit limpeza"},
			Status:              models.OperationalStatusOnTrip,
			ETAMinutes:          4,
			Vehicle:             models.Vehicle{Model: "Spin LTZ 2021", Plate: "GVX3F12", Year: "2021"},
			Categories:          []models.RideCategory{models.RideCategoryBasic, models.RideCategoryPlus},
			CreatedAt:           now.Add(-2 * time.Hour),
		},
		{
			ID:                  "drv_3",
			Name:                "Juliana Prado",
			Email:               "juliana.prado@gopet.com",
			Phone:               "+55 11 97777-3333",
			LicenseNumber:       "1122334455",
			LicenseExpiresAt:    "2028-01-20",
			LicenseDocumentURL:  "https://example.com/docs/juliana-cnh.jpg",
			ProfilePhotoURL:     "https://example.com/photos/juliana.jpg",
			TrainingCompletedAt: "2024-09-12",
			Rating:              4.99,
			CompletedRuns:       1930,
			Equipments:          []string{"Rampas pets idosos", "Manta térmica Vet", "Monitor de temperatura"},
			Status:              models.OperationalStatusOnline,
			ETAMinutes:          11,
			Vehicle:             models.Vehicle{Model: "Renegade 2023", Plate: "GZF8A88", Year: "2023"},
			Categories:          []models.RideCategory{models.RideCategorySUV, models.RideCategoryVet},
			CreatedAt:           now.Add(-3 * time.Hour),
		},
	}

	for _, driver := range drivers {
		driver.ApplicationStatus = models.ApplicationStatusApproved
		driver.ApplicationHistory = append([]string(nil), DriverHistory...)
		driver.Notes = "Checklist em andamento"
		driver.UpdatedAt = driver.CreatedAt
	}

	return drivers
}

func Rides(now time.Time) []*models.Ride {
	pets := Pets()
	drivers := Drivers(now)

	return []*models.Ride{
		{
			ID:                   "ride_1",
			TutorName:            "Marina Costa",
			Pet:                  *pets[0],
			Driver:               drivers[0],
			Category:             models.RideCategoryBasic,
			Status:               models.RideStatusEnRoutePickup,
			PickupAddress:        "R. Mourato Coelho, 1040 - Pinheiros",
			DestinationAddress:   "Vet Vida, Av. Rebouças 2225",
			ScheduledAt:          now.Add(15 * time.Minute).UTC().Format(time.RFC3339),
			EstimatedDistanceKm:  5.4,
			EstimatedDurationMin: 18,
			Price:                58.9,
			Notes:                "Levar caixa pink na mala",
			LastUpdate:           now,
			Timeline: []models.RideEvent{
				{
					ID:          "evt_1",
					Status:      models.RideStatusRequested,
					Title:       "Corrida solicitada",
					Description: "Tutor confirmou quote com cartão e Pix backup.",
					Timestamp:   now.Add(-20 * time.Minute),
				},
				{
					ID:          "evt_2",
					Status:      models.RideStatusDriverAccepted,
					Title:       "Camila aceitou",
					Description: "Motorista confirmou equipamentos Vet.",
					Timestamp:   now.Add(-10 * time.Minute),
				},
				{
					ID:          "evt_3",
					Status:      models.RideStatusEnRoutePickup,
					Title:       "A caminho do tutor",
					Description: "Checklist completado e foto do porta-malas enviada.",
					Timestamp:   now.Add(-2 * time.Minute),
				},
			},
		},
		{
			ID:                   "ride_2",
			TutorName:            "Clínica Bichos",
			Pet:                  *pets[1],
			Driver:               drivers[2],
			Category:             models.RideCategorySUV,
			Status:               models.RideStatusPetOnboard,
			PickupAddress:        "Avenida Paulista, 2200",
			DestinationAddress:   "Hospital Vet Dr. Pet - Moema",
			ScheduledAt:          now.Add(45 * time.Minute).UTC().Format(time.RFC3339),
			EstimatedDistanceKm:  9.1,
			EstimatedDurationMin: 25,
			Price:                112.0,
			Notes:                "Pet com pós-cirúrgico, evitar frenagens bruscas.",
			LastUpdate:           now.Add(-5 * time.Minute),
			Timeline: []models.RideEvent{
				{
					ID:          "evt_4",
					Status:      models.RideStatusRequested,
					Title:       "Agendamento Vet Prioritário",
					Description: "Checklist pós-operatório anexado.",
					Timestamp:   now.Add(-40 * time.Minute),
				},
				{
					ID:          "evt_5",
					Status:      models.RideStatusArrivedPickup,
					Title:       "Motorista chegou",
					Description: "Registro com foto e confirmação de focinheira.",
					Timestamp:   now.Add(-12 * time.Minute),
				},
				{
					ID:          "evt_6",
					Status:      models.RideStatusPetOnboard,
					Title:       "Thor embarcou",
					Description: "Foto do pet com manta térmica enviada ao tutor.",
					Timestamp:   now.Add(-5 * time.Minute),
				},
			},
		},
	}
}

func Incidents(now time.Time) []*models.Incident {
	return []*models.Incident{
		{
			ID:          "inc_1",
			RideID:      "ride_1",
			Title:       "Alarme SOS tutor",
			Description: "Tutor solicitou contato proativo após pet ficar agitado.",
			Severity:    models.IncidentSeverityMedium,
			Status:      models.IncidentStatusTriaged,
			CreatedAt:   now.Add(-7 * time.Minute),
		},
		{
			ID:          "inc_2",
			RideID:      "ride_2",
			Title:       "Checklist incompleto",
			Description: "Foto do cinto grande ainda não anexada.",
			Severity:    models.IncidentSeverityLow,
			Status:      models.IncidentStatusOpen,
			CreatedAt:   now.Add(-15 * time.Minute),
		},
	}
}

func Tickets(now time.Time) []*models.SupportTicket {
	return []*models.SupportTicket{
		{
			ID:        "ticket_1",
			RideID:    "ride_3",
			Subject:   "Cobrança de no-show",
			Summary:   "Tutor contesta taxa após motorista cancelar antes do SLA.",
			Priority:  models.TicketPriorityMedium,
			Status:    models.TicketStatusInProgress,
			CreatedAt: now.Add(-35 * time.Minute),
		},
		{
			ID:        "ticket_2",
			RideID:    "ride_1",
			Subject:   "Atualizar cupom corporativo",
			Summary:   "Clínica UAU quer ampliar carteira com 5 tutores adicionais.",
			Priority:  models.TicketPriorityLow,
			Status:    models.TicketStatusNew,
			CreatedAt: now.Add(-60 * time.Minute),
		},
	}
}

func Messages(now time.Time) []*models.ChatMessage {
	return []*models.ChatMessage{
		{ID: "msg_1", RideID: "ride_1", SenderRole: models.SenderRoleTutor, Content: "Camila, Luna precisa ir dentro da caixa, está no hall.", Timestamp: now.Add(-6 * time.Minute)},
		{ID: "msg_2", RideID: "ride_1", SenderRole: models.SenderRoleDriver, Content: "Perfeito! Em 5 min estou aí. Spray enzimático pronto.", Timestamp: now.Add(-5 * time.Minute)},
		{ID: "msg_3", RideID: "ride_1", SenderRole: models.SenderRoleTutor, Content: "Obrigada por mandar foto quando embarcar ❤️", Timestamp: now.Add(-4 * time.Minute)},
		{ID: "msg_4", RideID: "ride_1", SenderRole: models.SenderRoleDriver, Content: "Foto enviada pelo app, Luna tranquila!", Timestamp: now.Add(-2 * time.Minute)},
	}
}
