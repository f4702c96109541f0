package domain

import (
	"errors"
	"time"
)

var (
	MessageSuccessCreateMenu      = "menu created successfully"
	MessageSuccessJoinMenu        = "joined menu successfully"
	MessageSuccessLockMenu        = "menu locked successfully"
	MessageSuccessGetMenu         = "menu retrieved successfully"
	MessageSuccessGetParticipants = "participants retrieved successfully"
	MessageSuccessArchiveMenu     = "menu archived successfully"
	MessageSuccessInvite          = "invitation sent successfully"

	MessageFailedCreateMenu      = "failed to create menu"
	MessageFailedJoinMenu        = "failed to join menu"
	MessageFailedLockMenu        = "failed to lock menu"
	MessageFailedGetMenu         = "failed to retrieve menu"
	MessageFailedGetParticipants = "failed to retrieve participants"
	MessageFailedArchiveMenu     = "failed to archive menu"
	MessageFailedInvite          = "failed to send invitation"

	ErrMenuNotFound     = errors.New("menu not found")
	ErrMenuNotJoinable  = errors.New("menu is no longer accepting participants")
	ErrMenuFull         = errors.New("menu already has the maximum number of participants")
	ErrMenuCompleted    = errors.New("menu has been archived")
	ErrInvalidPasscode  = errors.New("invalid menu passcode")
	ErrInvalidStartDate = errors.New("invalid start date")
	ErrCodeGeneration   = errors.New("failed to generate a unique menu code")
)

const (
	MenuStatusPending   = "pending"
	MenuStatusActive    = "active"
	MenuStatusCompleted = "completed"

	MenuCodeLength      = 6
	MenuMaxParticipants = 2
	MenuDays            = 7
)

type (
	CreateMenuRequest struct {
		StartDate string `json:"start_date" validate:"required"`
		Passcode  string `json:"passcode,omitempty" validate:"omitempty,min=4,max=32"`
	}

	CreateMenuResponse struct {
		Code      string    `json:"code"`
		StartDate time.Time `json:"start_date"`
		EndDate   time.Time `json:"end_date"`
		Status    string    `json:"status"`
	}

	JoinMenuRequest struct {
		Passcode string `json:"passcode,omitempty"`
	}

	InviteRequest struct {
		Email string `json:"email" validate:"required,email"`
	}

	ParticipantResponse struct {
		ID          string `json:"id"`
		DisplayName string `json:"display_name,omitempty"`
		Position    int    `json:"position"`
	}

	MatchResponse struct {
		DishID   string `json:"dish_id"`
		DishName string `json:"dish_name,omitempty"`
		Position int    `json:"position"`
	}

	SlotProgress struct {
		Matched int `json:"matched"`
		Target  int `json:"target"`
	}

	MenuResponse struct {
		Code         string                     `json:"code"`
		StartDate    time.Time                  `json:"start_date"`
		EndDate      time.Time                  `json:"end_date"`
		Status       string                     `json:"status"`
		Participants []ParticipantResponse      `json:"participants"`
		Matches      map[string][]MatchResponse `json:"matches"` // keyed by category
		Progress     map[string]SlotProgress    `json:"progress"`
		TotalMatched int                        `json:"total_matched"`
		TotalTarget  int                        `json:"total_target"`
	}
)
