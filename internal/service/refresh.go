package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/rs/zerolog"

	"github.com/guttosm/coinpulse/internal/chart"
	"github.com/guttosm/coinpulse/internal/dashboard"
	"github.com/guttosm/coinpulse/internal/domain/models"
	"github.com/guttosm/coinpulse/internal/logger"
)

// SnapshotFetcher loads one market snapshot.
type SnapshotFetcher interface {
	FetchSnapshot(ctx context.Context) (*models.Snapshot, error)
}

// Publisher delivers an encoded update to open dashboard pages.
type Publisher interface {
	Publish(msg []byte)
}

// Fragmenter renders the replaceable part of the dashboard page.
type Fragmenter interface {
	LiveFragment(v dashboard.View) (string, error)
}

// Update is the websocket message sent after every refresh.
type Update struct {
	Type      string        `json:"type"`
	HTML      string        `json:"html"`
	Chart     *chart.Config `json:"chart,omitempty"`
	Error     string        `json:"error,omitempty"`
	UpdatedAt time.Time     `json:"updated_at"`
}

// RefreshService runs the dashboard pipeline: fetch, render, publish.
type RefreshService interface {
	// Refresh runs the pipeline once. On failure the dashboard shows its
	// error row and the fetch error is returned for the caller to log.
	Refresh(ctx context.Context) error
	Dashboard() dashboard.View
	Ready() error
}

type refreshService struct {
	fetcher   SnapshotFetcher
	renderer  *dashboard.Renderer
	fragments Fragmenter
	publisher Publisher
	log       zerolog.Logger
}

// NewRefreshService wires the pipeline. fragments and publisher may be nil,
// in which case nothing is pushed.
func NewRefreshService(f SnapshotFetcher, r *dashboard.Renderer, fragments Fragmenter, p Publisher) RefreshService {
	return &refreshService{
		fetcher:   f,
		renderer:  r,
		fragments: fragments,
		publisher: p,
		log:       logger.Component("refresh"),
	}
}

func (s *refreshService) Refresh(ctx context.Context) error {
	start := time.Now()
	snap, err := s.fetcher.FetchSnapshot(ctx)
	if err != nil {
		view := s.renderer.RenderFailure(err)
		s.log.Warn().Err(err).Dur("elapsed", time.Since(start)).Msg("dashboard refresh failed")
		s.publish(view)
		return err
	}

	view := s.renderer.Render(snap)
	s.log.Debug().
		Int("assets", len(snap.Assets)).
		Int("labels", len(view.Chart.Data.Labels)).
		Dur("elapsed", time.Since(start)).
		Msg("dashboard refreshed")
	s.publish(view)
	return nil
}

func (s *refreshService) Dashboard() dashboard.View { return s.renderer.View() }

func (s *refreshService) Ready() error { return s.renderer.Ready() }

func (s *refreshService) publish(v dashboard.View) {
	if s.publisher == nil || s.fragments == nil {
		return
	}
	html, err := s.fragments.LiveFragment(v)
	if err != nil {
		s.log.Error().Err(err).Msg("render live fragment")
		return
	}
	msg, err := json.Marshal(Update{
		Type:      "dashboard",
		HTML:      html,
		Chart:     v.Chart,
		Error:     v.Error,
		UpdatedAt: v.UpdatedAt,
	})
	if err != nil {
		s.log.Error().Err(err).Msg("encode update")
		return
	}
	s.publisher.Publish(msg)
}
