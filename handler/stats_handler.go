package handler

import (
	"context"
	"log"

	"main/model"
	"main/utils"

	"github.com/gin-gonic/gin"
)

// The stats surface reads through narrow slices of the repositories so
// the handler can be exercised without a live database.
type NoteCounter interface {
	CountUserNotes(ctx context.Context, userID string) (int, error)
}

type LabelCounter interface {
	CountUserLabels(ctx context.Context, userID string) (int, error)
}

type UserDirectory interface {
	FindUserByID(ctx context.Context, userID string) (*model.User, error)
	CountUsers(ctx context.Context) (int, error)
}

type RequestLogSource interface {
	TopRequests(ctx context.Context, limit int) ([]*model.RequestLog, error)
}

type StatsHandler struct {
	notes  NoteCounter
	labels LabelCounter
	users  UserDirectory
	logs   RequestLogSource
}

func NewStatsHandler(notes NoteCounter, labels LabelCounter,
	users UserDirectory, logs RequestLogSource) *StatsHandler {
	return &StatsHandler{
		notes:  notes,
		labels: labels,
		users:  users,
		logs:   logs,
	}
}

func (h *StatsHandler) GetUserStats(c *gin.Context) {
	ctx := c.Request.Context()
	userID := c.GetString("user_id")

	user, err := h.users.FindUserByID(ctx, userID)
	if err != nil {
		log.Printf("Error fetching user %s: %v", userID, err)
		utils.InternalError(c, "Failed to fetch user details")
		return
	}
	if user == nil {
		utils.NotFound(c, "User not found")
		return
	}

	totalNotes, err := h.notes.CountUserNotes(ctx, userID)
	if err != nil {
		log.Printf("Error counting notes: %v", err)
		utils.InternalError(c, "Failed to count notes")
		return
	}

	totalLabels, err := h.labels.CountUserLabels(ctx, userID)
	if err != nil {
		log.Printf("Error counting labels: %v", err)
		utils.InternalError(c, "Failed to count labels")
		return
	}

	totalUsers, err := h.users.CountUsers(ctx)
	if err != nil {
		log.Printf("Error counting users: %v", err)
		utils.InternalError(c, "Failed to count users")
		return
	}

	topRoutes, err := h.logs.TopRequests(ctx, 5)
	if err != nil {
		log.Printf("Error fetching top routes: %v", err)
		utils.InternalError(c, "Failed to fetch request stats")
		return
	}

	utils.Success(c, "Stats fetched successfully", gin.H{
		"user": gin.H{
			"username":     user.Username,
			"email":        user.Email,
			"is_verified":  user.IsVerified,
			"member_since": user.CreatedAt,
		},
		"notes":      gin.H{"total": totalNotes},
		"labels":     gin.H{"total": totalLabels},
		"top_routes": topRoutes,
		"system": gin.H{
			"cpu_percent":      utils.GetCPUUsage(),
			"memory_percent":   utils.GetMemoryUsage(),
			"registered_users": totalUsers,
		},
	})
}
