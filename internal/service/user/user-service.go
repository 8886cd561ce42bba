package user

import (
	"context"
	"fmt"
	"log/slog"

	"FiberTrack/entity"
	"FiberTrack/internal/lib/sl"
	"FiberTrack/internal/rowstore"
)

// UserService manages the worker registry stored in the Users sheet.
type UserService struct {
	store rowstore.Store
	log   *slog.Logger
}

func NewUserService(store rowstore.Store, log *slog.Logger) *UserService {
	return &UserService{
		store: store,
		log:   log.With(sl.Module("service.user")),
	}
}

// Register creates a user record for a Telegram chat unless one already
// exists. New workers get the PENDING role until an admin assigns one.
func (s *UserService) Register(ctx context.Context, telegramChatID, name string) (*entity.User, error) {
	existing, err := s.GetByTelegramID(ctx, telegramChatID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return existing, nil
	}

	u := entity.NewUser(telegramChatID, name)
	_, err = s.store.AddRow(ctx, rowstore.CategoryUsers, map[string]string{
		"user_id":          u.UserID,
		"name":             u.Name,
		"role":             u.Role,
		"telegram_chat_id": u.TelegramChatID,
		"active":           "TRUE",
	})
	if err != nil {
		return nil, fmt.Errorf("registering user: %w", err)
	}

	s.log.Info("user registered",
		slog.String("user_id", u.UserID),
		slog.String("telegram_chat_id", telegramChatID),
	)
	return u, nil
}

// GetByTelegramID returns the user owning a Telegram chat, or nil.
func (s *UserService) GetByTelegramID(ctx context.Context, telegramChatID string) (*entity.User, error) {
	rows, err := s.store.GetRows(ctx, rowstore.CategoryUsers, map[string]string{"telegram_chat_id": telegramChatID})
	if err != nil {
		return nil, fmt.Errorf("looking up user: %w", err)
	}
	if len(rows) == 0 {
		return nil, nil
	}
	u := userFromRow(rows[0])
	return &u, nil
}

// List returns every registered user.
func (s *UserService) List(ctx context.Context) ([]entity.User, error) {
	rows, err := s.store.GetRows(ctx, rowstore.CategoryUsers, nil)
	if err != nil {
		return nil, fmt.Errorf("listing users: %w", err)
	}

	users := make([]entity.User, 0, len(rows))
	for _, row := range rows {
		users = append(users, userFromRow(row))
	}
	return users, nil
}

// Update merges the given columns into a user row.
func (s *UserService) Update(ctx context.Context, userID string, fields map[string]string) error {
	updated, err := s.store.UpdateRow(ctx, rowstore.CategoryUsers, "user_id", userID, fields)
	if err != nil {
		return fmt.Errorf("updating user %s: %w", userID, err)
	}
	if !updated {
		return fmt.Errorf("user %s not found", userID)
	}
	return nil
}

// AssignWorker sets the worker responsible for a site.
func (s *UserService) AssignWorker(ctx context.Context, siteID, userID string) error {
	updated, err := s.store.UpdateRow(ctx, rowstore.CategorySites, "site_id", siteID, map[string]string{
		"assigned_to": userID,
	})
	if err != nil {
		return fmt.Errorf("assigning worker: %w", err)
	}
	if !updated {
		return fmt.Errorf("site %s not found", siteID)
	}
	return nil
}

// DailyProgram returns the sites a worker should visit today, filtered by
// the sequential workflow: each role only sees sites the previous phase
// has released. Completed sites never show up.
func (s *UserService) DailyProgram(ctx context.Context, userID string) ([]entity.Site, error) {
	userRows, err := s.store.GetRows(ctx, rowstore.CategoryUsers, map[string]string{"user_id": userID})
	if err != nil {
		return nil, fmt.Errorf("looking up user: %w", err)
	}
	if len(userRows) == 0 {
		return nil, nil
	}
	role := userRows[0].Get("role")

	siteRows, err := s.store.GetRows(ctx, rowstore.CategorySites, map[string]string{"assigned_to": userID})
	if err != nil {
		return nil, fmt.Errorf("listing sites: %w", err)
	}

	var sites []entity.Site
	for _, row := range siteRows {
		site := siteFromRow(row)
		if site.Status == entity.StatusCompleted {
			continue
		}
		if !roleSeesSite(role, site) {
			continue
		}
		sites = append(sites, site)
	}
	return sites, nil
}

func roleSeesSite(role string, site entity.Site) bool {
	switch role {
	case entity.RoleAutopsy:
		return site.Status == entity.StatusPending
	case entity.RoleConstruction:
		return site.Status == entity.StatusPending || site.Status == entity.StatusDiggingDone
	case entity.RoleDigging:
		return site.Status == entity.StatusPending && site.Type == "Construction"
	case entity.RoleOptical:
		return site.Status == entity.StatusDiggingDone
	}
	return false
}

func userFromRow(row rowstore.Row) entity.User {
	return entity.User{
		UserID:         row.Get("user_id"),
		Name:           row.Get("name"),
		Role:           row.Get("role"),
		TelegramChatID: row.Get("telegram_chat_id"),
		Active:         row.Get("active") == "TRUE",
	}
}

func siteFromRow(row rowstore.Row) entity.Site {
	return entity.Site{
		SiteID:     row.Get("site_id"),
		Address:    row.Get("address"),
		Type:       row.Get("type"),
		Status:     row.Get("status"),
		AssignedTo: row.Get("assigned_to"),
	}
}

// Sites lists every site, optionally filtered by status.
func (s *UserService) Sites(ctx context.Context, status string) ([]entity.Site, error) {
	var match map[string]string
	if status != "" {
		match = map[string]string{"status": status}
	}
	rows, err := s.store.GetRows(ctx, rowstore.CategorySites, match)
	if err != nil {
		return nil, fmt.Errorf("listing sites: %w", err)
	}

	sites := make([]entity.Site, 0, len(rows))
	for _, row := range rows {
		sites = append(sites, siteFromRow(row))
	}
	return sites, nil
}
