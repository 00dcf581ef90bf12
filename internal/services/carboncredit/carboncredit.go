// Package services содержит бизнес-логику жизненного цикла углеродных
// кредитов: создание, верификацию, покупку и машину состояний.
//
// Переходы статусов: pending -> verified -> sold, pending <-> cancelled.
// Верификация выполняется внешним верификатором, продажа — атомарной
// покупкой на уровне хранилища.
package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/agrigrow/agrigrow-backend/internal/lib/rabbitmq"
	"github.com/agrigrow/agrigrow-backend/internal/lib/sl"
	"github.com/agrigrow/agrigrow-backend/internal/models"
)

// availableCreditsCacheKey — ключ кеша витрины доступных кредитов.
const availableCreditsCacheKey = "credits:available"

// availableCreditsTTL — время жизни кеша витрины.
const availableCreditsTTL = time.Minute

// CreditRepository определяет методы для работы с кредитами в хранилище.
type CreditRepository interface {
	// CreateCredit добавляет новый кредит и возвращает его UID.
	CreateCredit(ctx context.Context, credit models.CarbonCredit) (string, error)
	// GetCredit возвращает кредит по UID.
	GetCredit(ctx context.Context, creditUID string) (*models.CarbonCredit, error)
	// ListCredits возвращает кредиты владельца.
	ListCredits(ctx context.Context, ownerUID string) ([]*models.CarbonCredit, error)
	// ListCreditsByIndustry возвращает кредиты, купленные профилем предприятия.
	ListCreditsByIndustry(ctx context.Context, industryUID string) ([]*models.CarbonCredit, error)
	// ListAvailableCredits возвращает верифицированные непроданные кредиты.
	ListAvailableCredits(ctx context.Context) ([]*models.CarbonCredit, error)
	// UpdateCreditStatus меняет статус кредита владельца.
	UpdateCreditStatus(ctx context.Context, creditUID, ownerUID string, status models.CreditStatus) (int, error)
	// VerifyCredit переводит кредит pending -> verified.
	VerifyCredit(ctx context.Context, creditUID string) (*models.CarbonCredit, error)
	// PurchaseCredit атомарно продаёт кредит покупателю.
	PurchaseCredit(ctx context.Context, creditUID, buyerUID, buyerName string) (*models.CarbonCredit, *models.IndustryProfile, error)
	// RemoveCredit удаляет кредит владельца в статусе pending.
	RemoveCredit(ctx context.Context, creditUID, ownerUID string) (int, error)
	// GetProfileByOwner возвращает профиль предприятия по владельцу.
	GetProfileByOwner(ctx context.Context, ownerUID string) (*models.IndustryProfile, error)
	// GetUser возвращает пользователя по UID.
	GetUser(ctx context.Context, userUID string) (*models.User, error)
	// GetFarm возвращает ферму владельца или models.ErrNotFound.
	GetFarm(ctx context.Context, farmUID, ownerUID string) (*models.Farm, error)
}

// Cache описывает методы для кэширования данных.
type Cache interface {
	// Get пытается получить значение из кеша по ключу.
	Get(key string, result any) (bool, error)
	// Set сохраняет значение в кеш с временем жизни.
	Set(key string, value any, expiration time.Duration) error
	// Invalidate удаляет значение из кеша по ключу.
	Invalidate(key string) error
}

// EventPublisher публикует события жизненного цикла кредитов в брокер.
type EventPublisher interface {
	Publish(exchange, routingKey string, message any) error
}

// ownerTransitions — переходы, доступные владельцу через смену статуса:
// pending и cancelled взаимно обратимы, верифицированный или проданный
// кредит владельцу менять нельзя. Верификация и продажа идут
// отдельными операциями.
var ownerTransitions = map[models.CreditStatus][]models.CreditStatus{
	models.CreditPending:   {models.CreditPending, models.CreditCancelled},
	models.CreditCancelled: {models.CreditPending, models.CreditCancelled},
}

// CarbonCreditService реализует бизнес-логику работы с кредитами,
// включая кеширование витрины и публикацию событий.
type CarbonCreditService struct {
	repo      CreditRepository
	cache     Cache
	publisher EventPublisher
	log       *slog.Logger
}

// NewCarbonCreditService создает новый экземпляр CarbonCreditService.
func NewCarbonCreditService(repo CreditRepository, cache Cache, publisher EventPublisher, log *slog.Logger) *CarbonCreditService {
	return &CarbonCreditService{
		repo:      repo,
		cache:     cache,
		publisher: publisher,
		log:       log,
	}
}

// Create создает кредит фермера в статусе pending и возвращает его UID.
// Привязка к ферме опциональна, но ферма должна принадлежать вызывающему.
func (s *CarbonCreditService) Create(ctx context.Context, ownerUID string, req models.CreateCreditRequest) (string, error) {
	var farmUID *string
	if req.FarmUID != "" {
		if _, err := s.repo.GetFarm(ctx, req.FarmUID, ownerUID); err != nil {
			return "", err
		}
		farmUID = &req.FarmUID
	}

	credit := models.CarbonCredit{
		Amount:   req.Amount,
		Price:    req.Price,
		Status:   models.CreditPending,
		FarmUID:  farmUID,
		OwnerUID: ownerUID,
	}
	uid, err := s.repo.CreateCredit(ctx, credit)
	if err != nil {
		return "", err
	}
	s.log.Info("created new carbon credit", slog.String("uid", uid))
	return uid, nil
}

// List возвращает кредиты в зависимости от роли: фермеру — выставленные
// им, предприятию — купленные его профилем. Предприятие без профиля
// ещё ничего не покупало.
func (s *CarbonCreditService) List(ctx context.Context, user *models.User) ([]*models.CarbonCredit, error) {
	if user.Role == models.RoleIndustry {
		profile, err := s.repo.GetProfileByOwner(ctx, user.UID)
		if err != nil {
			if errors.Is(err, models.ErrNotFound) {
				return []*models.CarbonCredit{}, nil
			}
			return nil, err
		}
		return s.repo.ListCreditsByIndustry(ctx, profile.UID)
	}
	return s.repo.ListCredits(ctx, user.UID)
}

// Available возвращает витрину верифицированных непроданных кредитов,
// используя кеш или хранилище.
func (s *CarbonCreditService) Available(ctx context.Context) ([]*models.CarbonCredit, error) {
	var result []*models.CarbonCredit
	found, err := s.cache.Get(availableCreditsCacheKey, &result)
	if err != nil {
		s.log.Warn("failed to read available credits from cache", sl.Err(err))
	}
	if found {
		return result, nil
	}

	result, err = s.repo.ListAvailableCredits(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.cache.Set(availableCreditsCacheKey, result, availableCreditsTTL); err != nil {
		s.log.Warn("failed to cache available credits", sl.Err(err))
	}
	return result, nil
}

// Read возвращает кредит с учётом видимости: фермер видит только свои,
// предприятие — доступные к покупке и купленные его профилем.
func (s *CarbonCreditService) Read(ctx context.Context, creditUID string, user *models.User) (*models.CarbonCredit, error) {
	const op = "services.carboncredit.Read"

	credit, err := s.repo.GetCredit(ctx, creditUID)
	if err != nil {
		return nil, err
	}

	if user.Role == models.RoleFarmer {
		if credit.OwnerUID != user.UID {
			return nil, fmt.Errorf("%s: %w", op, models.ErrNotFound)
		}
		return credit, nil
	}

	if credit.Status == models.CreditVerified && credit.IndustryUID == nil {
		return credit, nil
	}
	if credit.IndustryUID != nil {
		profile, err := s.repo.GetProfileByOwner(ctx, user.UID)
		if err == nil && profile.UID == *credit.IndustryUID {
			return credit, nil
		}
	}
	return nil, fmt.Errorf("%s: %w", op, models.ErrNotFound)
}

// UpdateStatus меняет статус кредита владельца по машине состояний.
// Владельцу доступны отмена неверифицированного кредита и возврат
// отменённого обратно в pending.
func (s *CarbonCreditService) UpdateStatus(ctx context.Context, creditUID, ownerUID, status string) (*models.CarbonCredit, error) {
	const op = "services.carboncredit.UpdateStatus"

	newStatus, ok := models.ParseCreditStatus(status)
	if !ok {
		return nil, fmt.Errorf("%s: unknown status %q: %w", op, status, models.ErrInvalidInput)
	}

	credit, err := s.repo.GetCredit(ctx, creditUID)
	if err != nil {
		return nil, err
	}
	if credit.OwnerUID != ownerUID {
		return nil, fmt.Errorf("%s: %w", op, models.ErrNotFound)
	}
	if !transitionAllowed(credit.Status, newStatus) {
		return nil, fmt.Errorf("%s: %s -> %s: %w", op, credit.Status, newStatus, models.ErrInvalidTransition)
	}

	count, err := s.repo.UpdateCreditStatus(ctx, creditUID, ownerUID, newStatus)
	if err != nil {
		return nil, err
	}
	if count == 0 {
		return nil, fmt.Errorf("%s: %w", op, models.ErrNotFound)
	}
	s.log.Info("updated credit status",
		slog.String("uid", creditUID), slog.String("status", string(newStatus)))
	return s.repo.GetCredit(ctx, creditUID)
}

func transitionAllowed(from, to models.CreditStatus) bool {
	for _, allowed := range ownerTransitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

// Verify переводит кредит pending -> verified по запросу внешнего
// верификатора, сбрасывает кеш витрины и публикует событие.
func (s *CarbonCreditService) Verify(ctx context.Context, creditUID string) (*models.CarbonCredit, error) {
	credit, err := s.repo.VerifyCredit(ctx, creditUID)
	if err != nil {
		return nil, err
	}
	s.log.Info("credit verified", slog.String("uid", creditUID))

	if err := s.cache.Invalidate(availableCreditsCacheKey); err != nil {
		s.log.Warn("failed to invalidate available credits cache", sl.Err(err))
	}

	event := models.CreditVerifiedEvent{
		CreditUID: credit.UID,
		Amount:    credit.Amount,
	}
	if err := s.publisher.Publish(rabbitmq.CreditEventsExchange, rabbitmq.RoutingKeyCreditVerified, event); err != nil {
		s.log.Warn("failed to publish credit verified event", sl.Err(err))
	}
	return credit, nil
}

// Purchase атомарно покупает кредит от имени предприятия. Профиль
// покупателя создаётся лениво в той же транзакции. После покупки
// сбрасывается кеш витрины и публикуется событие для уведомления
// фермера.
func (s *CarbonCreditService) Purchase(ctx context.Context, creditUID string, buyer *models.User) (*models.CarbonCredit, error) {
	credit, profile, err := s.repo.PurchaseCredit(ctx, creditUID, buyer.UID, buyer.Name)
	if err != nil {
		return nil, err
	}
	s.log.Info("credit purchased",
		slog.String("uid", creditUID), slog.String("industry_uid", profile.UID))

	if err := s.cache.Invalidate(availableCreditsCacheKey); err != nil {
		s.log.Warn("failed to invalidate available credits cache", sl.Err(err))
	}

	owner, err := s.repo.GetUser(ctx, credit.OwnerUID)
	if err != nil {
		s.log.Warn("failed to load credit owner for notification", sl.Err(err))
		return credit, nil
	}
	event := models.CreditSoldEvent{
		CreditUID:  credit.UID,
		Amount:     credit.Amount,
		Price:      credit.Price,
		OwnerName:  owner.Name,
		OwnerEmail: owner.Email,
		BuyerName:  profile.Name,
	}
	if err := s.publisher.Publish(rabbitmq.CreditEventsExchange, rabbitmq.RoutingKeyCreditSold, event); err != nil {
		s.log.Warn("failed to publish credit sold event", sl.Err(err))
	}
	return credit, nil
}

// Remove удаляет кредит владельца. Удалять можно только кредит
// в статусе pending.
func (s *CarbonCreditService) Remove(ctx context.Context, creditUID, ownerUID string) error {
	const op = "services.carboncredit.Remove"

	count, err := s.repo.RemoveCredit(ctx, creditUID, ownerUID)
	if err != nil {
		return err
	}
	if count > 0 {
		s.log.Info("removed credit", slog.String("uid", creditUID))
		return nil
	}

	credit, err := s.repo.GetCredit(ctx, creditUID)
	if err != nil {
		return err
	}
	if credit.OwnerUID != ownerUID {
		return fmt.Errorf("%s: %w", op, models.ErrNotFound)
	}
	return fmt.Errorf("%s: %w", op, models.ErrInvalidState)
}
