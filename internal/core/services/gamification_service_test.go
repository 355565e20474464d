package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/pocketfin/pocket_finance_app/internal/core/domain"
	portssvc "github.com/pocketfin/pocket_finance_app/internal/core/ports/services"
	"github.com/pocketfin/pocket_finance_app/internal/core/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// MockGamificationRepository is a mock type for the GamificationRepository interface
type MockGamificationRepository struct {
	mock.Mock
}

func (m *MockGamificationRepository) LoadGamificationProfile(ctx context.Context) (*domain.GamificationProfile, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.GamificationProfile), args.Error(1)
}

func (m *MockGamificationRepository) SaveGamificationProfile(ctx context.Context, profile domain.GamificationProfile) error {
	args := m.Called(ctx, profile)
	return args.Error(0)
}

// --- Test Suite Setup ---

type GamificationServiceTestSuite struct {
	suite.Suite
	mockRepo *MockGamificationRepository
	service  portssvc.GamificationSvcFacade
	day      time.Time
}

func (suite *GamificationServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockGamificationRepository)
	suite.service = services.NewGamificationService(suite.mockRepo)
	suite.day = time.Date(2025, time.May, 1, 8, 0, 0, 0, time.UTC)
}

func (suite *GamificationServiceTestSuite) seedEmpty() {
	// nil profile: nothing stored yet, the service starts a fresh one.
	suite.mockRepo.On("LoadGamificationProfile", mock.Anything).Return(nil, nil)
	suite.mockRepo.On("SaveGamificationProfile", mock.Anything, mock.Anything).Return(nil)
}

// --- Test Cases ---

func (suite *GamificationServiceTestSuite) TestFirstActivity() {
	suite.seedEmpty()

	profile, err := suite.service.RecordActivity(context.Background(), suite.day)

	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), 1, profile.CurrentStreak)
	assert.Equal(suite.T(), 1, profile.LongestStreak)
	assert.Equal(suite.T(), 10, profile.Points)
	assert.Equal(suite.T(), 1, profile.Level)
	assert.True(suite.T(), profile.HasBadge(domain.BadgeFirstEntry))
}

func (suite *GamificationServiceTestSuite) TestSameDayRepeatIsNoOp() {
	suite.seedEmpty()

	first, _ := suite.service.RecordActivity(context.Background(), suite.day)
	second, err := suite.service.RecordActivity(context.Background(), suite.day.Add(6*time.Hour))

	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), first.Points, second.Points)
	assert.Equal(suite.T(), first.CurrentStreak, second.CurrentStreak)
	suite.mockRepo.AssertNumberOfCalls(suite.T(), "SaveGamificationProfile", 1)
}

func (suite *GamificationServiceTestSuite) TestConsecutiveDaysExtendStreak() {
	suite.seedEmpty()

	for i := 0; i < 3; i++ {
		_, err := suite.service.RecordActivity(context.Background(), suite.day.AddDate(0, 0, i))
		assert.NoError(suite.T(), err)
	}

	profile, err := suite.service.Profile(context.Background())
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), 3, profile.CurrentStreak)
	assert.Equal(suite.T(), 30, profile.Points)
	assert.True(suite.T(), profile.HasBadge(domain.BadgeStreak3Days))
	assert.False(suite.T(), profile.HasBadge(domain.BadgeStreak7Days))
}

func (suite *GamificationServiceTestSuite) TestGapResetsStreakButKeepsLongest() {
	suite.seedEmpty()

	for i := 0; i < 4; i++ {
		_, _ = suite.service.RecordActivity(context.Background(), suite.day.AddDate(0, 0, i))
	}
	// Two days of silence, then one more entry.
	profile, err := suite.service.RecordActivity(context.Background(), suite.day.AddDate(0, 0, 6))

	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), 1, profile.CurrentStreak, "a gap resets the streak")
	assert.Equal(suite.T(), 4, profile.LongestStreak, "longest streak is preserved")
}

func (suite *GamificationServiceTestSuite) TestLevelAdvancesEveryHundredPoints() {
	suite.seedEmpty()

	for i := 0; i < 10; i++ {
		_, _ = suite.service.RecordActivity(context.Background(), suite.day.AddDate(0, 0, i))
	}

	profile, err := suite.service.Profile(context.Background())
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), 100, profile.Points)
	assert.Equal(suite.T(), 2, profile.Level)
	assert.True(suite.T(), profile.HasBadge(domain.BadgeStreak7Days))
}

func TestGamificationServiceTestSuite(t *testing.T) {
	suite.Run(t, new(GamificationServiceTestSuite))
}
