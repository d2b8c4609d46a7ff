package service

import (
	"context"
	"errors"
	"regexp"
	"strconv"
	"time"

	"github.com/AntonioEsper/MarketLens/internal/models"
	"github.com/AntonioEsper/MarketLens/internal/repo"
	"github.com/AntonioEsper/MarketLens/internal/xe"
	"github.com/go-orz/orz"
	"github.com/oklog/ulid/v2"
	"gorm.io/gorm"
)

// PlanService 周计划与每日检查清单
type PlanService struct {
	*orz.Service
	weeklyRepo *repo.WeeklyPlanRepo
	dailyRepo  *repo.DailyChecklistRepo
}

func NewPlanService(db *gorm.DB) *PlanService {
	return &PlanService{
		Service:    orz.NewService(db),
		weeklyRepo: repo.NewWeeklyPlanRepo(db),
		dailyRepo:  repo.NewDailyChecklistRepo(db),
	}
}

type WeeklyPlanRequest struct {
	MacroBias   string   `json:"macro_bias"`
	FocusAssets []string `json:"focus_assets"`
	Goals       string   `json:"goals"`
	Review      string   `json:"review"`
}

type DailyChecklistRequest struct {
	Items []models.ChecklistItem `json:"items" validate:"dive"`
	Mood  string                 `json:"mood" validate:"max=20"`
	Notes string                 `json:"notes"`
}

var weekKeyPattern = regexp.MustCompile(`^(\d{4})-W(\d{2})$`)

// ValidWeekKey 校验 ISO 周编号，例如 2024-W09
func ValidWeekKey(key string) bool {
	m := weekKeyPattern.FindStringSubmatch(key)
	if m == nil {
		return false
	}
	year, _ := strconv.Atoi(m[1])
	week, _ := strconv.Atoi(m[2])
	if week < 1 {
		return false
	}
	// 12月28日总是落在当年的最后一个 ISO 周
	_, lastWeek := time.Date(year, time.December, 28, 0, 0, 0, 0, time.UTC).ISOWeek()
	return week <= lastWeek
}

// ValidDayKey 校验日期编号，例如 2024-03-04
func ValidDayKey(key string) bool {
	_, err := time.Parse(time.DateOnly, key)
	return err == nil
}

func (s *PlanService) GetWeekly(ctx context.Context, userID, key string) (*models.WeeklyPlan, error) {
	if !ValidWeekKey(key) {
		return nil, xe.ErrInvalidPlanKey
	}
	plan, err := s.weeklyRepo.FindByUserAndKey(ctx, userID, key)
	if err != nil {
		return nil, err
	}
	return &plan, nil
}

// UpsertWeekly 保存周计划，不存在时创建
func (s *PlanService) UpsertWeekly(ctx context.Context, userID, key string, req WeeklyPlanRequest) (*models.WeeklyPlan, error) {
	if !ValidWeekKey(key) {
		return nil, xe.ErrInvalidPlanKey
	}
	var plan models.WeeklyPlan
	err := s.Transaction(ctx, func(ctx context.Context) error {
		var err error
		plan, err = s.weeklyRepo.FindByUserAndKey(ctx, userID, key)
		exists := err == nil
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		if !exists {
			plan = models.WeeklyPlan{ID: ulid.Make().String(), UserID: userID, Key: key}
		}
		plan.MacroBias = req.MacroBias
		plan.FocusAssets = req.FocusAssets
		plan.Goals = req.Goals
		plan.Review = req.Review
		if exists {
			return s.weeklyRepo.Save(ctx, &plan)
		}
		return s.weeklyRepo.Create(ctx, &plan)
	})
	if err != nil {
		return nil, err
	}
	return &plan, nil
}

func (s *PlanService) GetDaily(ctx context.Context, userID, key string) (*models.DailyChecklist, error) {
	if !ValidDayKey(key) {
		return nil, xe.ErrInvalidPlanKey
	}
	checklist, err := s.dailyRepo.FindByUserAndKey(ctx, userID, key)
	if err != nil {
		return nil, err
	}
	return &checklist, nil
}

// UpsertDaily 保存每日检查清单，不存在时创建
func (s *PlanService) UpsertDaily(ctx context.Context, userID, key string, req DailyChecklistRequest) (*models.DailyChecklist, error) {
	if !ValidDayKey(key) {
		return nil, xe.ErrInvalidPlanKey
	}
	var checklist models.DailyChecklist
	err := s.Transaction(ctx, func(ctx context.Context) error {
		var err error
		checklist, err = s.dailyRepo.FindByUserAndKey(ctx, userID, key)
		exists := err == nil
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		if !exists {
			checklist = models.DailyChecklist{ID: ulid.Make().String(), UserID: userID, Key: key}
		}
		checklist.Items = req.Items
		checklist.Mood = req.Mood
		checklist.Notes = req.Notes
		if exists {
			return s.dailyRepo.Save(ctx, &checklist)
		}
		return s.dailyRepo.Create(ctx, &checklist)
	})
	if err != nil {
		return nil, err
	}
	return &checklist, nil
}
