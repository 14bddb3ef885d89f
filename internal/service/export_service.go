package service

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/edu-report/report-card-api/internal/models"
	appErrors "github.com/edu-report/report-card-api/pkg/errors"
	"github.com/edu-report/report-card-api/pkg/export"
)

type cardAssembler interface {
	AssembleCard(ctx context.Context, studentID, programID, academicYearID string) (*models.ReportCard, error)
}

type overviewProvider interface {
	ClassOverview(ctx context.Context, filter models.ClassOverviewFilter) (*models.ClassOverview, error)
}

// ExportPayload carries rendered bytes plus the metadata handlers need to set
// download headers.
type ExportPayload struct {
	Filename    string
	ContentType string
	Data        []byte
}

// ExportService renders report cards and class overviews into downloadable
// documents.
type ExportService struct {
	cards    cardAssembler
	overview overviewProvider
	csv      *export.CSVExporter
	pdf      *export.PDFExporter
	logger   *zap.Logger
}

// NewExportService constructs ExportService.
func NewExportService(cards cardAssembler, overview overviewProvider, logger *zap.Logger) *ExportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ExportService{
		cards:    cards,
		overview: overview,
		csv:      export.NewCSVExporter(),
		pdf:      export.NewPDFExporter(),
		logger:   logger,
	}
}

// ReportCardPDF renders a student's full report card as a PDF document: one
// section per course with its topic grades and term summary, then the overall
// averages and the comment blocks.
func (s *ExportService) ReportCardPDF(ctx context.Context, studentID, programID, academicYearID string) (*ExportPayload, error) {
	card, err := s.cards.AssembleCard(ctx, studentID, programID, academicYearID)
	if err != nil {
		return nil, err
	}

	doc := export.Document{
		Title:    "Report Card",
		Subtitle: card.StudentName,
	}

	for _, course := range card.Courses {
		section := export.Section{Heading: course.CourseName}
		if section.Heading == "" {
			section.Heading = course.CourseID
		}
		table := export.Dataset{Headers: []string{"Topic", "Competency", "Term 1", "Term 2", "Term 3"}}
		for _, row := range course.Rows {
			competency := ""
			if row.Competency != nil {
				competency = *row.Competency
			}
			table.Rows = append(table.Rows, map[string]string{
				"Topic":      row.TopicName,
				"Competency": competency,
				"Term 1":     row.Term1,
				"Term 2":     row.Term2,
				"Term 3":     row.Term3,
			})
		}
		section.Table = &table
		if course.Summary != nil {
			for _, term := range course.Summary.Terms {
				section.Paragraphs = append(section.Paragraphs, fmt.Sprintf(
					"Term %d: coursework %s, unit test %s, exam %s, total %s",
					term.Term, formatMark(term.Coursework), formatMark(term.UnitTest),
					formatMark(term.Exam), formatMark(term.TrimesterTotal)))
			}
			yearly := fmt.Sprintf("Yearly average: %s", formatMark(course.Summary.YearlyAverage))
			if course.Summary.YearlyGrade != "" {
				yearly += fmt.Sprintf(" (%s)", course.Summary.YearlyGrade)
			}
			section.Paragraphs = append(section.Paragraphs, yearly)
		}
		doc.Sections = append(doc.Sections, section)
	}

	if card.Overall != nil {
		overall := export.Section{Heading: "Overall Averages"}
		for i, avg := range card.Overall.TermAverages {
			overall.Paragraphs = append(overall.Paragraphs, fmt.Sprintf("Term %d average: %s", i+1, formatMark(avg)))
		}
		overall.Paragraphs = append(overall.Paragraphs, fmt.Sprintf("Yearly average: %s", formatMark(card.Overall.YearlyAverage)))
		doc.Sections = append(doc.Sections, overall)
	}

	if card.TeacherComment != nil {
		doc.Sections = append(doc.Sections, export.Section{
			Heading: fmt.Sprintf("Teacher Comments (%s)", card.TeacherComment.TeacherName),
			Paragraphs: []string{
				card.TeacherComment.Term1Comment,
				card.TeacherComment.Term2Comment,
				card.TeacherComment.Term3Comment,
			},
		})
	}
	if card.DirectorMessage != nil {
		doc.Sections = append(doc.Sections, export.Section{
			Heading: fmt.Sprintf("Director's Message (%s)", card.DirectorMessage.DirectorName),
			Paragraphs: []string{
				card.DirectorMessage.IntroductionEN,
				card.DirectorMessage.IntroductionFR,
				card.DirectorMessage.Term1Comment,
				card.DirectorMessage.Term2Comment,
				card.DirectorMessage.Term3Comment,
				card.DirectorMessage.ConclusionEN,
				card.DirectorMessage.ConclusionFR,
			},
		})
	}

	data, err := s.pdf.RenderDocument(doc)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render report card pdf")
	}
	return &ExportPayload{
		Filename:    fmt.Sprintf("report-card-%s-%s.pdf", studentID, time.Now().UTC().Format("20060102")),
		ContentType: "application/pdf",
		Data:        data,
	}, nil
}

// ClassOverviewCSV renders the class overview detail rows as CSV.
func (s *ExportService) ClassOverviewCSV(ctx context.Context, filter models.ClassOverviewFilter) (*ExportPayload, error) {
	overview, err := s.overview.ClassOverview(ctx, filter)
	if err != nil {
		return nil, err
	}

	dataset := export.Dataset{
		Headers: []string{"Student", "Course", "Term", "Test Type", "Test Date", "Mark Earned", "Possible Mark"},
	}
	for _, row := range overview.Details {
		dataset.Rows = append(dataset.Rows, map[string]string{
			"Student":       row.StudentName,
			"Course":        row.CourseID,
			"Term":          row.TermID,
			"Test Type":     string(row.TestType),
			"Test Date":     row.TestDate.Format("2006-01-02"),
			"Mark Earned":   formatMark(row.MarkEarned),
			"Possible Mark": formatMark(row.PossibleMark),
		})
	}

	data, err := s.csv.Render(dataset)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render class overview csv")
	}
	return &ExportPayload{
		Filename:    fmt.Sprintf("class-overview-%s.csv", time.Now().UTC().Format("20060102")),
		ContentType: "text/csv",
		Data:        data,
	}, nil
}

func formatMark(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}
