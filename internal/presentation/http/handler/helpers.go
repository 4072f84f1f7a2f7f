package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// GetActorID extracts the acting staff member's ID from the Gin context
func GetActorID(c *gin.Context) *uuid.UUID {
	actorIDVal, exists := c.Get("actor_id")
	if !exists {
		return nil
	}
	actorID, ok := actorIDVal.(uuid.UUID)
	if !ok {
		return nil
	}
	return &actorID
}

// GetActorEmail extracts the acting staff member's email from the Gin context
func GetActorEmail(c *gin.Context) string {
	email, exists := c.Get("actor_email")
	if !exists {
		return ""
	}
	return email.(string)
}

// GetActorRoles extracts the acting staff member's roles from the Gin context
func GetActorRoles(c *gin.Context) []string {
	roles, exists := c.Get("actor_roles")
	if !exists {
		return nil
	}
	return roles.([]string)
}

// IsAdmin checks if the actor carries the admin role
func IsAdmin(c *gin.Context) bool {
	for _, role := range GetActorRoles(c) {
		if role == "admin" {
			return true
		}
	}
	return false
}
