package services

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"gopet/internal/models"
	"gopet/internal/repositories/memory"
	"gopet/internal/seed"
	"gopet/pkg/cache"
)

// memoryCache is a CacheService backed by a map of JSON blobs.
type memoryCache struct {
	mu      sync.Mutex
	entries map[string][]byte
	deletes int
}

func newMemoryCache() *memoryCache {
	return &memoryCache{entries: make(map[string][]byte)}
}

func (c *memoryCache) Get(_ context.Context, key string, dest interface{}) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	data, ok := c.entries[key]
	if !ok {
		return cache.ErrCacheMiss
	}
	return json.Unmarshal(data, dest)
}

func (c *memoryCache) Set(_ context.Context, key string, value interface{}, _ time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = data
	return nil
}

func (c *memoryCache) Delete(_ context.Context, keys ...string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, key := range keys {
		delete(c.entries, key)
	}
	c.deletes++
	return nil
}

func (c *memoryCache) has(key string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.entries[key]
	return ok
}

// recorder captures notifications.
type recorder struct {
	mu       sync.Mutex
	rides    []*models.Ride
	messages []*models.ChatMessage
	drivers  []*models.Driver
}

func (r *recorder) RideUpdated(ride *models.Ride) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rides = append(r.rides, ride)
}

func (r *recorder) MessagePosted(message *models.ChatMessage) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.messages = append(r.messages, message)
}

func (r *recorder) DriverUpdated(driver *models.Driver) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.drivers = append(r.drivers, driver)
}

func newSeededDrivers() *memory.DriverRepository {
	return memory.NewDriverRepository(seed.Drivers(time.Now()))
}

func rideInput() *models.RideInput {
	return &models.RideInput{
		TutorName:          "Marina Costa",
		PetID:              "pet_2",
		Category:           models.RideCategoryVet,
		PickupAddress:      "Rua Harmonia, 100",
		DestinationAddress: "Vet Vida",
		ScheduledAt:        "2024-05-01T10:00:00Z",
		Notes:              "Levar manta",
	}
}
