package menu

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"
	"time"

	"cullinary-backend/domain"
	"cullinary-backend/entities"
	"cullinary-backend/internal/utils/mailing"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const codeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

const maxCodeAttempts = 5

type (
	MenuService interface {
		CreateMenu(ctx context.Context, req domain.CreateMenuRequest, userID string) (domain.CreateMenuResponse, error)
		JoinMenu(ctx context.Context, code string, req domain.JoinMenuRequest, userID string) (domain.MenuResponse, error)
		LockMenu(ctx context.Context, code string) (domain.MenuResponse, error)
		GetMenu(ctx context.Context, code string) (domain.MenuResponse, error)
		ListParticipants(ctx context.Context, code string) ([]domain.ParticipantResponse, error)
		ArchiveMenu(ctx context.Context, code string) error
		Invite(ctx context.Context, code string, req domain.InviteRequest, userID string) error
	}

	// RecentMenuTracker is the slice of the user package the menu service
	// needs; it keeps the home-screen recents list in step with
	// create/join.
	RecentMenuTracker interface {
		TouchRecentMenu(ctx context.Context, userID string, code string) error
	}

	menuService struct {
		menuRepository MenuRepository
		recents        RecentMenuTracker
		newCode        func(length int) (string, error)
	}
)

func NewMenuService(menuRepository MenuRepository, recents RecentMenuTracker) MenuService {
	return &menuService{
		menuRepository: menuRepository,
		recents:        recents,
		newCode:        randomCode,
	}
}

func (s *menuService) CreateMenu(ctx context.Context, req domain.CreateMenuRequest, userID string) (domain.CreateMenuResponse, error) {
	startDate, err := time.Parse("2006-01-02", req.StartDate)
	if err != nil {
		return domain.CreateMenuResponse{}, domain.ErrInvalidStartDate
	}

	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return domain.CreateMenuResponse{}, domain.ErrParseUUID
	}

	code, err := s.generateCode(ctx)
	if err != nil {
		return domain.CreateMenuResponse{}, err
	}

	var passcodeHash string
	if req.Passcode != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(req.Passcode), bcrypt.DefaultCost)
		if err != nil {
			return domain.CreateMenuResponse{}, err
		}
		passcodeHash = string(hash)
	}

	menu := &entities.Menu{
		ID:           uuid.New(),
		Code:         code,
		StartDate:    startDate,
		EndDate:      startDate.AddDate(0, 0, domain.MenuDays-1),
		Status:       domain.MenuStatusPending,
		PasscodeHash: passcodeHash,
		Participants: []*entities.MenuParticipant{
			{
				ID:       uuid.New(),
				UserID:   userUUID,
				Position: 0,
				JoinedAt: time.Now(),
			},
		},
	}

	if err := s.menuRepository.CreateMenu(ctx, menu); err != nil {
		return domain.CreateMenuResponse{}, err
	}

	if err := s.recents.TouchRecentMenu(ctx, userID, code); err != nil {
		return domain.CreateMenuResponse{}, err
	}

	return domain.CreateMenuResponse{
		Code:      code,
		StartDate: menu.StartDate,
		EndDate:   menu.EndDate,
		Status:    menu.Status,
	}, nil
}

func (s *menuService) JoinMenu(ctx context.Context, code string, req domain.JoinMenuRequest, userID string) (domain.MenuResponse, error) {
	menu, err := s.getMenu(ctx, code)
	if err != nil {
		return domain.MenuResponse{}, err
	}

	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return domain.MenuResponse{}, domain.ErrParseUUID
	}

	// Re-joining as an existing member succeeds regardless of status.
	for _, participant := range menu.Participants {
		if participant.UserID == userUUID {
			return toMenuResponse(menu), nil
		}
	}

	if menu.Status != domain.MenuStatusPending {
		return domain.MenuResponse{}, domain.ErrMenuNotJoinable
	}
	if len(menu.Participants) >= domain.MenuMaxParticipants {
		return domain.MenuResponse{}, domain.ErrMenuFull
	}
	if menu.PasscodeHash != "" {
		if err := bcrypt.CompareHashAndPassword([]byte(menu.PasscodeHash), []byte(req.Passcode)); err != nil {
			return domain.MenuResponse{}, domain.ErrInvalidPasscode
		}
	}

	participant := &entities.MenuParticipant{
		ID:       uuid.New(),
		MenuID:   menu.ID,
		UserID:   userUUID,
		Position: len(menu.Participants),
		JoinedAt: time.Now(),
	}
	if err := s.menuRepository.AddParticipant(ctx, participant); err != nil {
		return domain.MenuResponse{}, err
	}
	menu.Participants = append(menu.Participants, participant)

	if err := s.recents.TouchRecentMenu(ctx, userID, menu.Code); err != nil {
		return domain.MenuResponse{}, err
	}

	return toMenuResponse(menu), nil
}

func (s *menuService) LockMenu(ctx context.Context, code string) (domain.MenuResponse, error) {
	menu, err := s.getMenu(ctx, code)
	if err != nil {
		return domain.MenuResponse{}, err
	}

	switch menu.Status {
	case domain.MenuStatusActive:
		return toMenuResponse(menu), nil // idempotent
	case domain.MenuStatusCompleted:
		return domain.MenuResponse{}, domain.ErrMenuCompleted
	}

	if err := s.menuRepository.UpdateMenuStatus(ctx, menu.ID, domain.MenuStatusActive); err != nil {
		return domain.MenuResponse{}, err
	}
	menu.Status = domain.MenuStatusActive
	return toMenuResponse(menu), nil
}

func (s *menuService) GetMenu(ctx context.Context, code string) (domain.MenuResponse, error) {
	menu, err := s.getMenu(ctx, code)
	if err != nil {
		return domain.MenuResponse{}, err
	}
	return toMenuResponse(menu), nil
}

func (s *menuService) ListParticipants(ctx context.Context, code string) ([]domain.ParticipantResponse, error) {
	menu, err := s.getMenu(ctx, code)
	if err != nil {
		return nil, err
	}
	return toParticipantResponses(menu.Participants), nil
}

func (s *menuService) ArchiveMenu(ctx context.Context, code string) error {
	menu, err := s.getMenu(ctx, code)
	if err != nil {
		return err
	}
	if menu.Status == domain.MenuStatusCompleted {
		return nil
	}
	return s.menuRepository.UpdateMenuStatus(ctx, menu.ID, domain.MenuStatusCompleted)
}

func (s *menuService) Invite(ctx context.Context, code string, req domain.InviteRequest, userID string) error {
	menu, err := s.getMenu(ctx, code)
	if err != nil {
		return err
	}

	// Only participants may hand the code out by mail.
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return domain.ErrParseUUID
	}
	member := false
	for _, participant := range menu.Participants {
		if participant.UserID == userUUID {
			member = true
			break
		}
	}
	if !member {
		return domain.ErrNotParticipant
	}

	if menu.Status == domain.MenuStatusCompleted {
		return domain.ErrMenuCompleted
	}

	body := fmt.Sprintf(
		"<p>You have been invited to plan a week of meals together on Cullinary.</p>"+
			"<p>Your menu code is <b>%s</b> — enter it on the join screen to start swiping.</p>",
		menu.Code,
	)
	return mailing.SendMail(req.Email, "Cullinary menu invitation", body)
}

func (s *menuService) getMenu(ctx context.Context, code string) (*entities.Menu, error) {
	menu, err := s.menuRepository.GetMenuByCode(ctx, NormalizeCode(code))
	if err != nil {
		return nil, err
	}
	if menu == nil {
		return nil, domain.ErrMenuNotFound
	}
	return menu, nil
}

func (s *menuService) generateCode(ctx context.Context) (string, error) {
	for attempt := 0; attempt < maxCodeAttempts; attempt++ {
		code, err := s.newCode(domain.MenuCodeLength)
		if err != nil {
			return "", err
		}
		inUse, err := s.menuRepository.CodeInUse(ctx, code)
		if err != nil {
			return "", err
		}
		if !inUse {
			return code, nil
		}
	}
	return "", domain.ErrCodeGeneration
}

func randomCode(length int) (string, error) {
	max := big.NewInt(int64(len(codeAlphabet)))
	out := make([]byte, length)
	for i := range out {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		out[i] = codeAlphabet[n.Int64()]
	}
	return string(out), nil
}

// NormalizeCode folds a user-typed code to the stored canonical form.
func NormalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

func toMenuResponse(menu *entities.Menu) domain.MenuResponse {
	matches := make(map[string][]domain.MatchResponse, 4)
	progress := make(map[string]domain.SlotProgress, 4)
	for _, category := range domain.Categories() {
		matches[string(category)] = []domain.MatchResponse{}
		progress[string(category)] = domain.SlotProgress{Target: domain.MenuDays}
	}

	total := 0
	for _, match := range menu.Matches {
		res := domain.MatchResponse{
			DishID:   match.DishID.String(),
			Position: match.Position,
		}
		if match.Dish != nil {
			res.DishName = match.Dish.Name
		}
		matches[match.Category] = append(matches[match.Category], res)
		slot := progress[match.Category]
		slot.Matched++
		progress[match.Category] = slot
		total++
	}

	return domain.MenuResponse{
		Code:         menu.Code,
		StartDate:    menu.StartDate,
		EndDate:      menu.EndDate,
		Status:       menu.Status,
		Participants: toParticipantResponses(menu.Participants),
		Matches:      matches,
		Progress:     progress,
		TotalMatched: total,
		TotalTarget:  domain.MenuDays * len(domain.Categories()),
	}
}

func toParticipantResponses(participants []*entities.MenuParticipant) []domain.ParticipantResponse {
	out := make([]domain.ParticipantResponse, 0, len(participants))
	for _, participant := range participants {
		res := domain.ParticipantResponse{
			ID:       participant.UserID.String(),
			Position: participant.Position,
		}
		if participant.User != nil {
			res.DisplayName = participant.User.DisplayName
		}
		out = append(out, res)
	}
	return out
}
