package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/edu-report/report-card-api/internal/models"
	appErrors "github.com/edu-report/report-card-api/pkg/errors"
)

type topicReader interface {
	ListTopics(ctx context.Context, courseID string) ([]models.Topic, error)
	CompetenciesByCourse(ctx context.Context, courseID string) (map[string]models.Competency, error)
}

// MatrixService assembles a course's topic/competency matrix: the rows that
// seed report detail tables and decide which grading scale validates each
// term grade.
type MatrixService struct {
	topics topicReader
	logger *zap.Logger
}

// NewMatrixService constructs MatrixService.
func NewMatrixService(topics topicReader, logger *zap.Logger) *MatrixService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &MatrixService{topics: topics, logger: logger}
}

// Build returns the course matrix with one of three states: no topics at all,
// topics without competencies (numeric-only course) or topics with at least
// one competency (letter-graded course). Callers render each state
// differently and must not re-derive it.
func (s *MatrixService) Build(ctx context.Context, courseID string) (*models.MatrixResult, error) {
	topics, err := s.topics.ListTopics(ctx, courseID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list topics")
	}
	if len(topics) == 0 {
		return &models.MatrixResult{Status: models.MatrixNoTopics, Rows: []models.MatrixRow{}}, nil
	}

	competencies, err := s.topics.CompetenciesByCourse(ctx, courseID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list competencies")
	}

	result := &models.MatrixResult{Status: models.MatrixNumericOnly, Rows: make([]models.MatrixRow, 0, len(topics))}
	for _, topic := range topics {
		row := models.MatrixRow{TopicID: topic.ID, TopicName: topic.Name}
		if competency, ok := competencies[topic.ID]; ok {
			description := competency.Description
			scaleID := competency.GradingScaleID
			row.Competency = &description
			row.GradingScaleID = &scaleID
			result.Status = models.MatrixCompetencies
		}
		result.Rows = append(result.Rows, row)
	}
	return result, nil
}
