package skill

import (
	"context"
	"errors"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/steelegbr/solidradioalexa/internal/liner"
	"github.com/steelegbr/solidradioalexa/internal/musicstats"
	"github.com/steelegbr/solidradioalexa/internal/types"
)

// Apology is spoken when any upstream fetch for a play request fails.
const Apology = "I've hit a problem trying to do that for you. Sorry. Please try again later!"

// Player handles play-class requests: it fetches the station state and
// renders the response that (re)starts the stream.
type Player struct {
	api           musicstats.ContentAPI
	liners        *liner.Selector
	station       string
	metadataToken string
}

func NewPlayer(api musicstats.ContentAPI, liners *liner.Selector, station, metadataToken string) *Player {
	return &Player{
		api:           api,
		liners:        liners,
		station:       station,
		metadataToken: metadataToken,
	}
}

// Play never fails: upstream errors are logged and answered with Apology.
func (p *Player) Play(ctx context.Context, req types.Request) types.ResponseEnvelope {
	logger := log.FromContext(ctx)
	logger.Info("play stream intent triggered", "intent", req.IntentName())

	np, err := p.fetch(ctx)
	if err != nil {
		logUpstreamError(logger, err)
		return newResponse().speak(Apology).envelope()
	}

	resp := compose(req, np, p.metadataToken)
	logger.Info("play intent handling complete", "station", np.station.Name, "liner", np.liner != "")
	return resp
}

// fetch issues the station, songplay and EPG requests concurrently. Liners
// are requested after the station resolves and only when it uses them. The
// first error cancels the rest.
func (p *Player) fetch(ctx context.Context) (nowPlaying, error) {
	var np nowPlaying
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		st, err := p.api.Station(gctx, p.station)
		if err != nil {
			return err
		}
		np.station = st
		if !st.UseLiners {
			log.FromContext(ctx).Debug("no liners to be used", "station", st.Name)
			return nil
		}
		liners, err := p.api.Liners(gctx, p.station)
		if err != nil {
			return err
		}
		np.liner = p.liners.Select(st, liners)
		return nil
	})
	g.Go(func() error {
		sp, err := p.api.NowPlaying(gctx, p.station)
		if err != nil {
			return err
		}
		np.songPlay = sp
		return nil
	})
	g.Go(func() error {
		entry, err := p.api.CurrentEpgEntry(gctx, p.station)
		if err != nil {
			return err
		}
		np.epg = entry
		return nil
	})

	if err := g.Wait(); err != nil {
		return nowPlaying{}, err
	}
	return np, nil
}

func logUpstreamError(logger *log.Logger, err error) {
	var (
		httpErr      *musicstats.HTTPError
		shapeErr     *musicstats.ShapeError
		transportErr *musicstats.TransportError
	)
	switch {
	case errors.As(err, &httpErr):
		logger.Error("bailed out of play request", "resource", httpErr.Resource, "status", httpErr.StatusCode, "body", httpErr.Body)
	case errors.As(err, &shapeErr):
		logger.Error("bailed out of play request", "resource", shapeErr.Resource, "body", shapeErr.Body, "err", shapeErr.Err)
	case errors.As(err, &transportErr):
		logger.Error("bailed out of play request", "resource", transportErr.Resource, "err", transportErr.Err)
	default:
		logger.Error("bailed out of play request", "err", err)
	}
}
