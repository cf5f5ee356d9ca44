package viewctl

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/guttosm/coinpulse/internal/coingecko"
	"github.com/guttosm/coinpulse/internal/domain/models"
	"github.com/guttosm/coinpulse/internal/format"
)

type mockFetcher struct{ mock.Mock }

func (m *mockFetcher) FetchAssetDetail(ctx context.Context, id string) (*models.AssetDetail, error) {
	args := m.Called(ctx, id)
	d, _ := args.Get(0).(*models.AssetDetail)
	return d, args.Error(1)
}

func (m *mockFetcher) FetchHistoricalSeries(ctx context.Context, id string, days models.RangeDays) (*models.HistoricalSeries, error) {
	args := m.Called(ctx, id, days)
	s, _ := args.Get(0).(*models.HistoricalSeries)
	return s, args.Error(1)
}

// funcFetcher lets a test block inside a fetch.
type funcFetcher struct {
	detail  func(id string) (*models.AssetDetail, error)
	history func(id string, days models.RangeDays) (*models.HistoricalSeries, error)
}

func (f funcFetcher) FetchAssetDetail(_ context.Context, id string) (*models.AssetDetail, error) {
	return f.detail(id)
}

func (f funcFetcher) FetchHistoricalSeries(_ context.Context, id string, days models.RangeDays) (*models.HistoricalSeries, error) {
	return f.history(id, days)
}

func asset(id string) *models.AssetDetail {
	return &models.AssetDetail{ID: id, Name: id, Symbol: id[:3], Description: "desc", CurrentPrice: 10}
}

func history(id string, days models.RangeDays) *models.HistoricalSeries {
	t := time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC)
	return &models.HistoricalSeries{AssetID: id, Days: days, Points: []models.PricePoint{{Time: t, Price: 1}, {Time: t.Add(time.Hour), Price: 2}}}
}

func enUS(t *testing.T) format.Locale {
	t.Helper()
	l, err := format.LookupLocale("en-US")
	require.NoError(t, err)
	return l.In(time.UTC)
}

func activeRange(st State) int {
	active := 0
	for _, o := range st.Ranges {
		if o.Active {
			if active != 0 {
				return -1
			}
			active = o.Days
		}
	}
	return active
}

func TestToDetail_LoadsMetadataThenDefaultHistory(t *testing.T) {
	m := &mockFetcher{}
	m.On("FetchAssetDetail", mock.Anything, "bitcoin").Return(asset("bitcoin"), nil).Once()
	m.On("FetchHistoricalSeries", mock.Anything, "bitcoin", models.Range7D).Return(history("bitcoin", 7), nil).Once()

	c := NewController(m, Options{Locale: enUS(t)})
	st, err := c.ToDetail(context.Background(), "bitcoin")
	require.NoError(t, err)

	assert.Equal(t, Detail, st.View)
	assert.Equal(t, "bitcoin", st.AssetID)
	assert.Equal(t, models.Range7D, st.Range)
	assert.Equal(t, 7, activeRange(st))
	require.NotNil(t, st.Detail.Header)
	require.NotNil(t, st.Detail.Chart)
	assert.Equal(t, "Price (7 Days)", st.Detail.Chart.Data.Datasets[0].Label)
	m.AssertExpectations(t)
}

func TestToDashboard_RetainsAssetID(t *testing.T) {
	m := &mockFetcher{}
	m.On("FetchAssetDetail", mock.Anything, "ethereum").Return(asset("ethereum"), nil)
	m.On("FetchHistoricalSeries", mock.Anything, "ethereum", models.Range7D).Return(history("ethereum", 7), nil)

	c := NewController(m, Options{})
	_, err := c.ToDetail(context.Background(), "ethereum")
	require.NoError(t, err)

	st := c.ToDashboard()
	assert.Equal(t, Dashboard, st.View)
	assert.Equal(t, "ethereum", st.AssetID)
	assert.Nil(t, st.Detail.Header, "detail content is not part of the dashboard state")
}

func TestSelectRange_OneFetchOneRebuild(t *testing.T) {
	m := &mockFetcher{}
	m.On("FetchAssetDetail", mock.Anything, "bitcoin").Return(asset("bitcoin"), nil).Once()
	m.On("FetchHistoricalSeries", mock.Anything, "bitcoin", models.Range7D).Return(history("bitcoin", 7), nil).Once()
	m.On("FetchHistoricalSeries", mock.Anything, "bitcoin", models.Range30D).Return(history("bitcoin", 30), nil).Once()

	c := NewController(m, Options{Locale: enUS(t)})
	_, err := c.ToDetail(context.Background(), "bitcoin")
	require.NoError(t, err)
	before := c.Detail().Instance()

	st, err := c.SelectRange(context.Background(), models.Range30D)
	require.NoError(t, err)

	assert.True(t, before.Destroyed())
	assert.NotSame(t, before, c.Detail().Instance())
	assert.Equal(t, 30, activeRange(st))
	assert.Equal(t, "Price (30 Days)", st.Detail.Chart.Data.Datasets[0].Label)
	m.AssertNumberOfCalls(t, "FetchAssetDetail", 1)
	m.AssertNumberOfCalls(t, "FetchHistoricalSeries", 2)
}

func TestSelectRange_Rejected(t *testing.T) {
	c := NewController(&mockFetcher{}, Options{})

	_, err := c.SelectRange(context.Background(), models.Range30D)
	assert.ErrorIs(t, err, ErrNotInDetail)

	_, err = c.SelectRange(context.Background(), models.RangeDays(3))
	assert.ErrorIs(t, err, models.ErrInvalidRange)
}

func TestSelectRange_StaleResultDiscarded(t *testing.T) {
	started := make(chan struct{})
	release := make(chan struct{})
	f := funcFetcher{
		detail: func(id string) (*models.AssetDetail, error) { return asset(id), nil },
		history: func(id string, days models.RangeDays) (*models.HistoricalSeries, error) {
			if days == models.Range30D {
				close(started)
				<-release
			}
			return history(id, days), nil
		},
	}
	c := NewController(f, Options{Locale: enUS(t)})
	_, err := c.ToDetail(context.Background(), "bitcoin")
	require.NoError(t, err)

	slow := make(chan error, 1)
	go func() {
		_, err := c.SelectRange(context.Background(), models.Range30D)
		slow <- err
	}()
	<-started

	st, err := c.SelectRange(context.Background(), models.Range90D)
	require.NoError(t, err)
	assert.Equal(t, "Price (90 Days)", st.Detail.Chart.Data.Datasets[0].Label)

	close(release)
	assert.ErrorIs(t, <-slow, ErrStaleResult)

	final := c.State()
	assert.Equal(t, models.Range90D, final.Range)
	assert.Equal(t, 90, activeRange(final))
	assert.Equal(t, "Price (90 Days)", final.Detail.Chart.Data.Datasets[0].Label)
}

func TestSelectRange_DuringNavigationKeepsMetadata(t *testing.T) {
	started := make(chan struct{})
	release := make(chan struct{})
	f := funcFetcher{
		detail: func(id string) (*models.AssetDetail, error) {
			if id == "ethereum" {
				close(started)
				<-release
			}
			return asset(id), nil
		},
		history: func(id string, days models.RangeDays) (*models.HistoricalSeries, error) {
			if id == "ethereum" && days == models.Range7D {
				t.Error("default history must not load after a range change")
			}
			return history(id, days), nil
		},
	}
	c := NewController(f, Options{Locale: enUS(t)})
	_, err := c.ToDetail(context.Background(), "bitcoin")
	require.NoError(t, err)

	nav := make(chan error, 1)
	go func() {
		_, err := c.ToDetail(context.Background(), "ethereum")
		nav <- err
	}()
	<-started

	st, err := c.SelectRange(context.Background(), models.Range30D)
	require.NoError(t, err)
	assert.Equal(t, "ethereum", st.AssetID)
	assert.Equal(t, "Price (30 Days)", st.Detail.Chart.Data.Datasets[0].Label)

	close(release)
	require.NoError(t, <-nav)

	final := c.State()
	require.NotNil(t, final.Detail.Header)
	assert.Equal(t, "ethereum", final.Detail.Header.ID)
	assert.Equal(t, models.Range30D, final.Range)
	assert.Equal(t, 30, activeRange(final))
	assert.Equal(t, "Price (30 Days)", final.Detail.Chart.Data.Datasets[0].Label)
}

func TestToDetail_SupersededByDashboard(t *testing.T) {
	started := make(chan struct{})
	release := make(chan struct{})
	f := funcFetcher{
		detail: func(id string) (*models.AssetDetail, error) {
			close(started)
			<-release
			return asset(id), nil
		},
		history: func(id string, days models.RangeDays) (*models.HistoricalSeries, error) {
			t.Error("history must not be fetched for a superseded navigation")
			return nil, errors.New("unexpected")
		},
	}
	c := NewController(f, Options{})

	done := make(chan error, 1)
	go func() {
		_, err := c.ToDetail(context.Background(), "bitcoin")
		done <- err
	}()
	<-started
	c.ToDashboard()
	close(release)

	assert.ErrorIs(t, <-done, ErrStaleResult)
	assert.Equal(t, Dashboard, c.State().View)
}

func TestToDetail_NetworkFailures(t *testing.T) {
	netErr := fmt.Errorf("%w: status 429", coingecko.ErrNetworkFailure)

	t.Run("detail failure shows error content and skips history", func(t *testing.T) {
		m := &mockFetcher{}
		m.On("FetchAssetDetail", mock.Anything, "bitcoin").Return(nil, netErr).Once()

		c := NewController(m, Options{Locale: enUS(t)})
		st, err := c.ToDetail(context.Background(), "bitcoin")
		require.NoError(t, err)
		assert.Equal(t, format.MsgDetailFailed, st.Detail.Error)
		assert.Nil(t, st.Detail.Chart)
		m.AssertNotCalled(t, "FetchHistoricalSeries", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("history failure clears the chart", func(t *testing.T) {
		m := &mockFetcher{}
		m.On("FetchAssetDetail", mock.Anything, "bitcoin").Return(asset("bitcoin"), nil)
		m.On("FetchHistoricalSeries", mock.Anything, "bitcoin", models.Range7D).Return(history("bitcoin", 7), nil).Once()
		m.On("FetchHistoricalSeries", mock.Anything, "bitcoin", models.Range365D).Return(nil, netErr).Once()

		c := NewController(m, Options{Locale: enUS(t)})
		_, err := c.ToDetail(context.Background(), "bitcoin")
		require.NoError(t, err)
		old := c.Detail().Instance()

		st, err := c.SelectRange(context.Background(), models.Range365D)
		require.NoError(t, err)
		assert.Nil(t, st.Detail.Chart)
		assert.Nil(t, c.Detail().Instance())
		assert.True(t, old.Destroyed())
		assert.NotNil(t, st.Detail.Header, "metadata stays on a chart-only failure")
		assert.Equal(t, 365, activeRange(st))
	})
}

func TestNavigate(t *testing.T) {
	m := &mockFetcher{}
	m.On("FetchAssetDetail", mock.Anything, "bitcoin").Return(asset("bitcoin"), nil).Once()
	m.On("FetchHistoricalSeries", mock.Anything, "bitcoin", models.Range30D).Return(history("bitcoin", 30), nil).Once()
	m.On("FetchHistoricalSeries", mock.Anything, "bitcoin", models.Range1D).Return(history("bitcoin", 1), nil).Once()

	c := NewController(m, Options{Locale: enUS(t)})
	ctx := context.Background()

	st, err := c.Navigate(ctx, "bitcoin", models.Range30D)
	require.NoError(t, err)
	assert.Equal(t, 30, activeRange(st))

	// Same asset and range: a page reload fetches nothing.
	_, err = c.Navigate(ctx, "bitcoin", models.Range30D)
	require.NoError(t, err)

	// Same asset, new range: only the history.
	st, err = c.Navigate(ctx, "bitcoin", models.Range1D)
	require.NoError(t, err)
	assert.Equal(t, 1, activeRange(st))

	m.AssertExpectations(t)
	m.AssertNumberOfCalls(t, "FetchAssetDetail", 1)
}

func TestRangeOptions(t *testing.T) {
	opts := RangeOptions(enUS(t), "bitcoin", models.Range90D)
	require.Len(t, opts, len(models.Ranges))
	assert.Equal(t, "1D", opts[0].Label)
	assert.Equal(t, "/coins/bitcoin?days=365", opts[4].Href)
	assert.True(t, opts[3].Active)

	id := RangeOptions(format.DefaultLocale(), "bitcoin", models.Range7D)
	assert.Equal(t, "7H", id[1].Label)
}

func TestClose(t *testing.T) {
	c := NewController(&mockFetcher{}, Options{})

	c.Close()
	c.Close()

	_, err := c.ToDetail(context.Background(), "bitcoin")
	assert.ErrorIs(t, err, ErrClosed)
}
