package app

import (
	"math"
	"reflect"
	"testing"

	"studymate-service/internal/domain"
)

func attempt(topic string, score int) domain.Attempt {
	return domain.Attempt{Topic: topic, Score: score, TotalQuestions: 5}
}

func TestSummarizeDashboardScenario(t *testing.T) {
	attempts := []domain.Attempt{
		attempt("Math", 50),
		attempt("Math", 70),
		attempt("History", 90),
	}

	summary := Summarize(attempts)

	if summary.TotalQuizzes != 3 {
		t.Fatalf("expected 3 quizzes, got %d", summary.TotalQuizzes)
	}
	if summary.OverallAverage != 70 {
		t.Fatalf("expected overall average 70, got %d", summary.OverallAverage)
	}
	want := []domain.TopicStat{
		{Topic: "Math", AverageScore: 60, AttemptCount: 2},
		{Topic: "History", AverageScore: 90, AttemptCount: 1},
	}
	if !reflect.DeepEqual(summary.PerformanceByTopic, want) {
		t.Fatalf("expected per-topic %+v, got %+v", want, summary.PerformanceByTopic)
	}
	// Math's mean is exactly 60 after rounding but 60.0 unrounded, so it is
	// not weak; only means strictly below the threshold qualify.
	if !reflect.DeepEqual(summary.WeakTopics, []string{}) {
		t.Fatalf("expected no weak topics, got %v", summary.WeakTopics)
	}
}

func TestSummarizeWeakTopicBoundary(t *testing.T) {
	attempts := []domain.Attempt{
		attempt("Exactly", 60),
		attempt("JustUnder", 59),
		attempt("RoundsUp", 59), // mean 59.5 rounds to 60 but is still weak
		attempt("RoundsUp", 60),
		attempt("Strong", 80),
	}

	summary := Summarize(attempts)

	byTopic := make(map[string]domain.TopicStat)
	for _, s := range summary.PerformanceByTopic {
		byTopic[s.Topic] = s
	}
	if byTopic["RoundsUp"].AverageScore != 60 {
		t.Fatalf("expected RoundsUp mean to round to 60, got %d", byTopic["RoundsUp"].AverageScore)
	}

	want := []string{"JustUnder", "RoundsUp"}
	if !reflect.DeepEqual(summary.WeakTopics, want) {
		t.Fatalf("expected weak topics %v, got %v", want, summary.WeakTopics)
	}
}

func TestSummarizeTopicOrderIsFirstAppearance(t *testing.T) {
	attempts := []domain.Attempt{
		attempt("Zebra", 40),
		attempt("Apple", 30),
		attempt("Zebra", 50),
		attempt("Mango", 20),
	}

	summary := Summarize(attempts)

	var order []string
	for _, s := range summary.PerformanceByTopic {
		order = append(order, s.Topic)
	}
	if !reflect.DeepEqual(order, []string{"Zebra", "Apple", "Mango"}) {
		t.Fatalf("expected first-appearance order, got %v", order)
	}
	if !reflect.DeepEqual(summary.WeakTopics, []string{"Zebra", "Apple", "Mango"}) {
		t.Fatalf("expected weak topics in the same order, got %v", summary.WeakTopics)
	}
}

func TestSummarizeEmptyHistory(t *testing.T) {
	summary := Summarize(nil)

	if summary.TotalQuizzes != 0 || summary.OverallAverage != 0 {
		t.Fatalf("expected zero counts, got %+v", summary)
	}
	if summary.PerformanceByTopic == nil || len(summary.PerformanceByTopic) != 0 {
		t.Fatalf("expected empty (non-nil) per-topic slice, got %#v", summary.PerformanceByTopic)
	}
	if summary.WeakTopics == nil || len(summary.WeakTopics) != 0 {
		t.Fatalf("expected empty (non-nil) weak topics, got %#v", summary.WeakTopics)
	}
}

func TestSummarizeOverallAverageRounds(t *testing.T) {
	// 33 + 34 + 34 = 101, mean 33.67 rounds to 34.
	attempts := []domain.Attempt{
		attempt("A", 33),
		attempt("A", 34),
		attempt("B", 34),
	}
	if got := Summarize(attempts).OverallAverage; got != 34 {
		t.Fatalf("expected overall average 34, got %d", got)
	}

	// 50 + 51 = 101, mean 50.5 rounds half away from zero to 51.
	attempts = []domain.Attempt{attempt("A", 50), attempt("A", 51)}
	if got := Summarize(attempts).OverallAverage; got != 51 {
		t.Fatalf("expected overall average 51, got %d", got)
	}
}

func TestSummarizeMeansMatchReference(t *testing.T) {
	// Per-topic means must agree with a double-precision reference computed
	// in one pass, regardless of how many attempts accumulated per topic.
	attempts := []domain.Attempt{
		attempt("Math", 33), attempt("Math", 34), attempt("Math", 34),
		attempt("History", 1), attempt("History", 0),
		attempt("Science", 99), attempt("Science", 100), attempt("Science", 98), attempt("Science", 97),
	}

	type acc struct {
		sum   float64
		count int
	}
	reference := make(map[string]*acc)
	for _, a := range attempts {
		if reference[a.Topic] == nil {
			reference[a.Topic] = &acc{}
		}
		reference[a.Topic].sum += float64(a.Score)
		reference[a.Topic].count++
	}

	for _, stat := range Summarize(attempts).PerformanceByTopic {
		ref := reference[stat.Topic]
		want := int(math.Round(ref.sum / float64(ref.count)))
		if stat.AverageScore != want {
			t.Fatalf("topic %s: expected mean %d, got %d", stat.Topic, want, stat.AverageScore)
		}
		if stat.AttemptCount != ref.count {
			t.Fatalf("topic %s: expected count %d, got %d", stat.Topic, ref.count, stat.AttemptCount)
		}
	}
}

func TestWeakTopicsHelperMatchesSummary(t *testing.T) {
	attempts := []domain.Attempt{
		attempt("Math", 40),
		attempt("History", 90),
	}
	if got := WeakTopics(attempts); !reflect.DeepEqual(got, []string{"Math"}) {
		t.Fatalf("expected [Math], got %v", got)
	}
}
