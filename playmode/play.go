// This file is part of Gophertas.
//
// Gophertas is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Gophertas is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Gophertas.  If not, see <https://www.gnu.org/licenses/>.

package playmode

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/bradleyjkemp/memviz"
	"github.com/jetsetilly/gophertas/curated"
	"github.com/jetsetilly/gophertas/environment"
	"github.com/jetsetilly/gophertas/hostsim"
	"github.com/jetsetilly/gophertas/hotkeys"
	"github.com/jetsetilly/gophertas/logger"
	"github.com/jetsetilly/gophertas/notifications"
	"github.com/jetsetilly/gophertas/performance/limiter"
	"github.com/jetsetilly/gophertas/playback"
	"github.com/jetsetilly/gophertas/savestate"
	"github.com/jetsetilly/gophertas/script"
	"github.com/jetsetilly/gophertas/statsview"
	"github.com/jetsetilly/gophertas/studio"
	"github.com/jetsetilly/gophertas/synccheck"
)

// PlayError is the sentinel pattern for errors returned by Run().
const PlayError = "play: %v"

// Options for a playback session that are not part of the environment.
type Options struct {
	// read hotkeys from the terminal device. an empty string means no
	// terminal hotkeys
	Terminal string

	// launch the stats server
	StatsView bool

	// write a Graphviz representation of the engine to the file when the
	// session ends
	Memviz string

	// the number of ticks the simulated host spends loading the world
	LoadingTicks int

	// enable playback when the session starts
	AutoStart bool

	// messages for the user
	Output io.Writer
}

// Run a playback session for the script named in the environment's Config.
func Run(ctx context.Context, env *environment.Environment, opts Options) (rerr error) {
	if env.Config.Script == "" {
		return curated.Errorf(PlayError, "no script specified")
	}
	if opts.Output == nil {
		opts.Output = io.Discard
	}

	ctx, cancel := signal.NotifyContext(ctx, os.Interrupt)
	defer cancel()

	src, err := script.NewController(env.Config.Script)
	if err != nil {
		return curated.Errorf(PlayError, err)
	}

	host := hostsim.NewHost(opts.LoadingTicks)
	coord := savestate.NewCoordinator(host, src, env.Savestate)

	manual := &hotkeys.Manual{}
	sources := hotkeys.Sources{manual}

	if opts.Terminal != "" {
		tm, err := hotkeys.NewTerminal(opts.Terminal, env.Hotkeys, cancel)
		if err != nil {
			return curated.Errorf(PlayError, err)
		}
		defer func() {
			if err := tm.Close(); err != nil && rerr == nil {
				rerr = curated.Errorf(PlayError, err)
			}
		}()
		sources = append(sources, tm)
	}

	bridge := studio.NewBridge(env.Studio.Address.String())

	e := playback.NewEngine(host, src,
		playback.WithHotkeys(hotkeys.NewSet(), sources),
		playback.WithSavestates(coord),
		playback.WithObserver(bridge),
		playback.WithNotify(notifications.Multi{bridge, logNotify{}}),
		playback.WithPreferences(env.Playback),
	)

	bridge.OnCommand(func(cmd studio.Command) {
		cmd.Apply(e, manual)
	})
	err = bridge.Start(ctx)
	if err != nil {
		return curated.Errorf(PlayError, err)
	}
	defer bridge.Close()

	watcher, err := script.NewWatcher(func(pth string) {
		src.MarkDirty()
		e.PushFunction(func() {
			logger.Logf(e, "playmode", "%s has changed", pth)
		})
	})
	if err != nil {
		return curated.Errorf(PlayError, err)
	}
	defer watcher.Close()
	src.SetWatcher(watcher)

	if env.Config.SyncDB != "" {
		j, err := synccheck.Open(env.Config.SyncDB)
		if err != nil {
			return curated.Errorf(PlayError, err)
		}
		defer j.Close()
		synccheck.Attach(j, e, src)
	}

	lim, err := limiter.NewTicker(env.Config.TickRate)
	if err != nil {
		return curated.Errorf(PlayError, err)
	}
	defer lim.Stop()

	if opts.StatsView {
		statsview.Launch(opts.Output, "")
	}

	fmt.Fprintf(opts.Output, "playing %s at %d ticks per second\n", src.Identity(), env.Config.TickRate)
	fmt.Fprintf(opts.Output, "studio bridge on ws://%s%s\n", bridge.Addr(), studio.Path)

	if opts.AutoStart {
		err := e.Enable()
		if err != nil && !curated.Is(err, playback.HostLoading) {
			logger.Log(logger.Allow, "playmode", err)
		}
	}

	for lim.Wait(ctx) {
		host.Update()
		e.Tick()
	}

	e.Disable(playback.ReasonRequested)
	fmt.Fprintf(opts.Output, "stopped at frame %d\n", host.Frame())

	if opts.Memviz != "" {
		err := dumpMemviz(opts.Memviz, e)
		if err != nil {
			return curated.Errorf(PlayError, err)
		}
	}

	return nil
}

func dumpMemviz(pth string, e *playback.Engine) error {
	f, err := os.Create(pth)
	if err != nil {
		return err
	}
	memviz.Map(f, e)
	return f.Close()
}
