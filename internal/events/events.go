package events

import (
	"time"

	"github.com/google/uuid"
)

// TopicRestaurantUserCreated carries restaurant onboarding notifications
// to the provisioning pipeline.
const TopicRestaurantUserCreated = "restaurant.user.created"

const EventTypeRestaurantUserCreated = "RestaurantUserCreated"

// Envelope wraps every published domain event.
type Envelope struct {
	EventType string      `json:"eventType"`
	Payload   interface{} `json:"payload"`
}

// RestaurantUserCreated is emitted after a restaurant account has been
// persisted pending approval.
type RestaurantUserCreated struct {
	UserID            uuid.UUID `json:"userId"`
	Email             string    `json:"email"`
	RestaurantName    string    `json:"restaurantName"`
	RestaurantAddress string    `json:"restaurantAddress"`
	Phone             *string   `json:"phone"`
	Timestamp         time.Time `json:"timestamp"`
}
