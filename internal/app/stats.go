package app

import (
	"math"

	"studymate-service/internal/domain"
)

// WeakTopicThreshold is the percentage below which a topic counts as weak.
// The comparison uses the unrounded per-topic mean; a mean of exactly 60 is
// not weak.
const WeakTopicThreshold = 60.0

// Summarize reduces an attempt history into the dashboard statistics. It is
// pure: same input, same output, no side effects.
//
// Topic order in PerformanceByTopic and WeakTopics is first-appearance order
// among the attempts, not sorted; the dashboard relies on that ordering.
// An empty history yields zero values and empty slices, not an error.
func Summarize(attempts []domain.Attempt) domain.Summary {
	summary := domain.Summary{
		PerformanceByTopic: []domain.TopicStat{},
		WeakTopics:         []string{},
	}
	if len(attempts) == 0 {
		return summary
	}

	type topicAcc struct {
		sum   int
		count int
	}
	order := make([]string, 0)
	byTopic := make(map[string]*topicAcc)
	totalSum := 0

	for _, attempt := range attempts {
		acc, ok := byTopic[attempt.Topic]
		if !ok {
			acc = &topicAcc{}
			byTopic[attempt.Topic] = acc
			order = append(order, attempt.Topic)
		}
		acc.sum += attempt.Score
		acc.count++
		totalSum += attempt.Score
	}

	summary.TotalQuizzes = len(attempts)
	summary.OverallAverage = roundMean(totalSum, len(attempts))

	for _, topic := range order {
		acc := byTopic[topic]
		summary.PerformanceByTopic = append(summary.PerformanceByTopic, domain.TopicStat{
			Topic:        topic,
			AverageScore: roundMean(acc.sum, acc.count),
			AttemptCount: acc.count,
		})
		if float64(acc.sum)/float64(acc.count) < WeakTopicThreshold {
			summary.WeakTopics = append(summary.WeakTopics, topic)
		}
	}
	return summary
}

// WeakTopics returns just the weak-topic list for tutor priming.
func WeakTopics(attempts []domain.Attempt) []string {
	return Summarize(attempts).WeakTopics
}

// roundMean rounds the mean half away from zero, matching how the scores
// themselves were rounded at submission time.
func roundMean(sum, count int) int {
	if count == 0 {
		return 0
	}
	return int(math.Round(float64(sum) / float64(count)))
}
