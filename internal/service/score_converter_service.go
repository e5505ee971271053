package service

import (
	"fmt"
	"math"

	"github.com/lshigami/paper2exam/internal/model"
)

const (
	ieltsReadingQuestions = 40
	toeicReadingMin       = 5.0
	toeicReadingMax       = 495.0

	ScaleIELTSBand    = "ielts_band"
	ScaleTOEICReading = "toeic_reading"
)

// ieltsBands maps a raw score out of 40 to an Academic Reading band. The
// first row whose minimum is reached wins.
var ieltsBands = []struct {
	minRaw int
	band   float64
}{
	{39, 9.0}, {37, 8.5}, {35, 8.0}, {33, 7.5}, {30, 7.0}, {27, 6.5}, {23, 6.0},
	{19, 5.5}, {15, 5.0}, {13, 4.5}, {10, 4.0}, {8, 3.5}, {6, 3.0}, {4, 2.5},
	{2, 2.0}, {1, 1.0},
}

type EstimatedScore struct {
	Scale string
	Value float64
}

type ScoreConverterService interface {
	Estimate(examType model.ExamType, correct, total int) (EstimatedScore, error)
}

type scoreConverterServiceImpl struct{}

func NewScoreConverterService() ScoreConverterService {
	return &scoreConverterServiceImpl{}
}

// Estimate projects a practice result onto the official scale: IELTS results
// are rescaled to 40 questions and looked up in the band table, TOEIC results
// map linearly onto the 5-495 reading scale in steps of 5.
func (s *scoreConverterServiceImpl) Estimate(examType model.ExamType, correct, total int) (EstimatedScore, error) {
	if total <= 0 {
		return EstimatedScore{}, fmt.Errorf("cannot estimate a score for an exam without questions")
	}
	if correct < 0 || correct > total {
		return EstimatedScore{}, fmt.Errorf("correct count %d is out of valid range (0-%d)", correct, total)
	}
	ratio := float64(correct) / float64(total)

	if examType == model.ExamTypeTOEIC {
		scaled := toeicReadingMin + math.Round(ratio*(toeicReadingMax-toeicReadingMin)/5)*5
		return EstimatedScore{Scale: ScaleTOEICReading, Value: scaled}, nil
	}

	raw := int(math.Round(ratio * ieltsReadingQuestions))
	for _, b := range ieltsBands {
		if raw >= b.minRaw {
			return EstimatedScore{Scale: ScaleIELTSBand, Value: b.band}, nil
		}
	}
	return EstimatedScore{Scale: ScaleIELTSBand, Value: 0}, nil
}
