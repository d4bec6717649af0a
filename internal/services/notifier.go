package services

import (
	"gopet/internal/models"
	"gopet/pkg/websocket"
)

// RideNotifier observes ride and chat changes. Calls happen after the store
// lock is released and receive copies.
type RideNotifier interface {
	RideUpdated(ride *models.Ride)
	MessagePosted(message *models.ChatMessage)
}

type DriverNotifier interface {
	DriverUpdated(driver *models.Driver)
}

// LiveFeed fans domain changes out to websocket rooms: the ride's own room
// and the admin room.
type LiveFeed struct {
	hub *websocket.Hub
}

func NewLiveFeed(hub *websocket.Hub) *LiveFeed {
	return &LiveFeed{hub: hub}
}

func (f *LiveFeed) RideUpdated(ride *models.Ride) {
	f.hub.Publish(websocket.RideRoom(ride.ID), websocket.MessageTypeRideUpdated, ride)
	f.hub.Publish(websocket.AdminRoom, websocket.MessageTypeRideUpdated, ride)
}

func (f *LiveFeed) MessagePosted(message *models.ChatMessage) {
	f.hub.Publish(websocket.RideRoom(message.RideID), websocket.MessageTypeChatMessage, message)
	f.hub.Publish(websocket.AdminRoom, websocket.MessageTypeChatMessage, message)
}

func (f *LiveFeed) DriverUpdated(driver *models.Driver) {
	f.hub.Publish(websocket.AdminRoom, websocket.MessageTypeDriverUpdated, driver)
}
