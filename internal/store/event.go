package store

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

// InsertEmailEventParams describes one open or click.
type InsertEmailEventParams struct {
	Ucode      string
	EventType  string
	Topic      string
	UserAgent  string
	ClickedURL *string
}

// NewsletterEventStats aggregates tracking events for one topic.
type NewsletterEventStats struct {
	UniqueOpens  int `db:"unique_opens"`
	TotalClicks  int `db:"total_clicks"`
	UniqueClicks int `db:"unique_clicks"`
}

// URLClicks counts clicks on one link.
type URLClicks struct {
	URL          string `db:"url" json:"url"`
	TotalClicks  int    `db:"total_clicks" json:"total_clicks"`
	UniqueClicks int    `db:"unique_clicks" json:"unique_clicks"`
}

// TopicEventCounts counts events per topic and type.
type TopicEventCounts struct {
	Topic     string `db:"topic" json:"topic"`
	EventType string `db:"event_type" json:"event_type"`
	Count     int    `db:"count" json:"count"`
}

const sqlInsertEmailEvent = `
INSERT INTO email_events (ucode, event_type, topic, user_agent, clicked_url)
VALUES ($1, $2, $3, $4, $5)
`

func (s *Store) InsertEmailEvent(ctx context.Context, params InsertEmailEventParams) error {
	_, err := s.db.ExecContext(ctx, sqlInsertEmailEvent,
		params.Ucode,
		params.EventType,
		params.Topic,
		params.UserAgent,
		params.ClickedURL)
	if err != nil {
		return fmt.Errorf("failed to insert email event: %w", err)
	}
	return nil
}

const sqlGetNewsletterEventStats = `
SELECT
    COUNT(DISTINCT ucode) FILTER (WHERE event_type = 'open') AS unique_opens,
    COUNT(*) FILTER (WHERE event_type = 'click') AS total_clicks,
    COUNT(DISTINCT ucode) FILTER (WHERE event_type = 'click') AS unique_clicks
FROM email_events
WHERE topic = $1
`

func (s *Store) GetNewsletterEventStats(ctx context.Context, topic string) (NewsletterEventStats, error) {
	var stats NewsletterEventStats
	if err := s.db.GetContext(ctx, &stats, sqlGetNewsletterEventStats, topic); err != nil {
		return NewsletterEventStats{}, fmt.Errorf("failed to get newsletter event stats: %w", err)
	}
	return stats, nil
}

const sqlListURLClicks = `
SELECT clicked_url AS url, COUNT(*) AS total_clicks, COUNT(DISTINCT ucode) AS unique_clicks
FROM email_events
WHERE topic = $1 AND event_type = 'click' AND clicked_url IS NOT NULL
GROUP BY clicked_url
ORDER BY total_clicks DESC, url ASC
`

func (s *Store) ListURLClicks(ctx context.Context, topic string) ([]URLClicks, error) {
	clicks := []URLClicks{}
	if err := s.db.SelectContext(ctx, &clicks, sqlListURLClicks, topic); err != nil {
		return nil, fmt.Errorf("failed to list url clicks: %w", err)
	}
	return clicks, nil
}

const sqlListTopicEventCounts = `
SELECT topic, event_type, COUNT(*) AS count
FROM email_events
GROUP BY topic, event_type
ORDER BY topic ASC, event_type ASC
`

func (s *Store) ListTopicEventCounts(ctx context.Context) ([]TopicEventCounts, error) {
	counts := []TopicEventCounts{}
	if err := s.db.SelectContext(ctx, &counts, sqlListTopicEventCounts); err != nil {
		return nil, fmt.Errorf("failed to list topic event counts: %w", err)
	}
	return counts, nil
}

const sqlInsertUnsubscribeEvent = `
INSERT INTO unsubscribe_events (subscriber_id, newsletter_id)
VALUES ($1, $2)
`

// InsertUnsubscribeEvent records an unsubscribe, attributed to a newsletter
// when one is known.
func (s *Store) InsertUnsubscribeEvent(ctx context.Context, subscriberID uuid.UUID, newsletterID *uuid.UUID) error {
	if _, err := s.db.ExecContext(ctx, sqlInsertUnsubscribeEvent, subscriberID, newsletterID); err != nil {
		return fmt.Errorf("failed to insert unsubscribe event: %w", err)
	}
	return nil
}

const sqlCountUnsubscribes = `SELECT COUNT(*) FROM unsubscribe_events WHERE newsletter_id = $1`

func (s *Store) CountUnsubscribes(ctx context.Context, newsletterID uuid.UUID) (int, error) {
	var count int
	if err := s.db.GetContext(ctx, &count, sqlCountUnsubscribes, newsletterID); err != nil {
		return 0, fmt.Errorf("failed to count unsubscribes: %w", err)
	}
	return count, nil
}

const sqlGetNewsletterIDBySlug = `SELECT id FROM newsletters WHERE slug = $1`

// GetNewsletterIDBySlug resolves a tracking topic to its newsletter.
func (s *Store) GetNewsletterIDBySlug(ctx context.Context, slug string) (uuid.UUID, error) {
	var id uuid.UUID
	err := s.db.GetContext(ctx, &id, sqlGetNewsletterIDBySlug, slug)
	if err != nil {
		if isNoRows(err) {
			return uuid.Nil, ErrNotFound
		}
		return uuid.Nil, fmt.Errorf("failed to get newsletter id by slug: %w", err)
	}
	return id, nil
}
