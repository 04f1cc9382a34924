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

package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/jetsetilly/gophertas/analog"
	"github.com/jetsetilly/gophertas/environment"
	"github.com/jetsetilly/gophertas/hostsim"
	"github.com/jetsetilly/gophertas/logger"
	"github.com/jetsetilly/gophertas/modalflag"
	"github.com/jetsetilly/gophertas/paths"
	"github.com/jetsetilly/gophertas/performance"
	"github.com/jetsetilly/gophertas/playback"
	"github.com/jetsetilly/gophertas/playmode"
	"github.com/jetsetilly/gophertas/prefs"
	"github.com/jetsetilly/gophertas/synccheck"
	"github.com/jetsetilly/gophertas/version"
)

// exit values
const (
	exitOK         = 0
	exitParseError = 10
	exitModeError  = 20
)

func main() {
	os.Exit(launch(context.Background(), os.Args[1:], os.Stdout))
}

// launch the mode selected by the arguments. returns the exit value.
func launch(ctx context.Context, args []string, output io.Writer) int {
	md := &modalflag.Modes{Output: output}
	md.NewArgs(args)
	md.AddSubModes("RUN", "SYNC", "JOURNAL", "ANALOG", "PERFORMANCE", "VERSION")
	echo := md.AddBool("log", false, "echo log to stdout")
	prefsArg := md.AddString("prefs", "", "preferences for this session (key::value; key::value)")

	p, err := md.Parse()
	switch p {
	case modalflag.ParseHelp:
		return exitOK
	case modalflag.ParseError:
		fmt.Fprintf(output, "* error: %v\n", err)
		return exitParseError
	}

	cfg, err := environment.ParseConfig(nil)
	if err != nil {
		fmt.Fprintf(output, "* error: %v\n", err)
		return exitParseError
	}

	if *echo || cfg.LogEcho {
		logger.SetEcho(logger.NewColorizer(output), false)
	} else {
		logger.SetEcho(nil, false)
	}

	if *prefsArg != "" {
		prefs.PushCommandLineStack(*prefsArg)
		defer func() {
			if unused := prefs.PopCommandLineStack(); unused != "" {
				fmt.Fprintf(output, "* unused preferences: %s\n", unused)
			}
		}()
	}

	switch md.Mode() {
	case "RUN":
		err = run(ctx, md, cfg)
	case "SYNC":
		err = sync(ctx, md, cfg)
	case "JOURNAL":
		err = journal(md, cfg)
	case "ANALOG":
		err = solve(md)
	case "PERFORMANCE":
		err = perform(ctx, md, cfg)
	case "VERSION":
		fmt.Fprintln(output, version.Get())
	}

	if err != nil {
		fmt.Fprintf(output, "* error in %s mode: %s\n", md, err)
		return exitModeError
	}

	return exitOK
}

// scriptArg returns the single script named on the command line or the script
// named in the config.
func scriptArg(md *modalflag.Modes, cfg environment.Config) (string, error) {
	switch len(md.RemainingArgs()) {
	case 0:
		if cfg.Script == "" {
			return "", fmt.Errorf("script required for %s mode", md)
		}
		return cfg.Script, nil
	case 1:
		return md.GetArg(0), nil
	}
	return "", fmt.Errorf("too many arguments for %s mode", md)
}

func run(ctx context.Context, md *modalflag.Modes, cfg environment.Config) error {
	md.NewMode()

	tty := md.AddString("tty", "/dev/tty", "terminal device for hotkeys. empty for no hotkeys")
	stats := md.AddBool("statsview", false, "launch the stats server")
	memviz := md.AddString("memviz", "", "write a graph of the engine to the file on exit")
	loading := md.AddInt("loading", 30, "number of ticks the host spends loading")
	autostart := md.AddBool("autostart", false, "start playback immediately")
	studioAddr := md.AddString("studio", "", "address of the studio bridge")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	cfg.Script, err = scriptArg(md, cfg)
	if err != nil {
		return err
	}
	if *studioAddr != "" {
		cfg.StudioAddr = *studioAddr
	}

	env, err := environment.NewEnvironment(cfg)
	if err != nil {
		return err
	}

	err = playmode.Run(ctx, env, playmode.Options{
		Terminal:     *tty,
		StatsView:    *stats,
		Memviz:       *memviz,
		LoadingTicks: *loading,
		AutoStart:    *autostart,
		Output:       md.Output,
	})
	if err != nil {
		return err
	}

	// save preferences before finishing successfully
	return env.Save()
}

func sync(ctx context.Context, md *modalflag.Modes, cfg environment.Config) error {
	md.NewMode()

	db := md.AddString("db", cfg.SyncDB, "sync journal database")
	save := md.AddBool("save", false, "save the report to the sync resource directory")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	scripts := md.RemainingArgs()
	if len(scripts) == 0 {
		return fmt.Errorf("at least one script required for %s mode", md)
	}

	var j *synccheck.Journal
	if *db != "" {
		j, err = synccheck.Open(*db)
		if err != nil {
			return err
		}
		defer j.Close()
	}

	newHost := func() (playback.Host, error) {
		return hostsim.NewHost(0), nil
	}

	report, err := synccheck.Check(ctx, scripts, newHost, j)
	if err != nil {
		return err
	}

	err = report.Write(md.Output)
	if err != nil {
		return err
	}

	if *save {
		err = saveReport(md.Output, report)
		if err != nil {
			return err
		}
	}

	if !report.OK() {
		return fmt.Errorf("sync check failed")
	}
	return nil
}

func saveReport(output io.Writer, report synccheck.Report) error {
	pth, err := paths.ResourcePath("sync", fmt.Sprintf("%s.txt", paths.UniqueFilename("report", "")))
	if err != nil {
		return err
	}

	f, err := os.Create(pth)
	if err != nil {
		return err
	}

	err = report.Write(f)
	if err != nil {
		_ = f.Close()
		return err
	}

	err = f.Close()
	if err != nil {
		return err
	}

	fmt.Fprintf(output, "report saved to %s\n", pth)
	return nil
}

func journal(md *modalflag.Modes, cfg environment.Config) error {
	md.NewMode()

	db := md.AddString("db", cfg.SyncDB, "sync journal database")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	if *db == "" {
		return fmt.Errorf("journal database required for %s mode", md)
	}

	j, err := synccheck.Open(*db)
	if err != nil {
		return err
	}
	defer j.Close()

	entries, err := j.List()
	if err != nil {
		return err
	}

	for _, e := range entries {
		fmt.Fprintf(md.Output, "%s %s %s %d/%d %s\n", e.Started.Format(time.DateTime), e.Status, e.Script, e.Frame, e.Total, e.Reason)
	}

	return nil
}

func solve(md *modalflag.Modes) error {
	md.NewMode()

	mode := md.AddString("mode", "circle", "analog mode: ignore, circle, square, precise")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	if len(md.RemainingArgs()) != 2 {
		return fmt.Errorf("angle and magnitude required for %s mode", md)
	}

	m, err := analog.ParseMode(*mode)
	if err != nil {
		return err
	}

	angle, err := strconv.ParseFloat(md.GetArg(0), 32)
	if err != nil {
		return fmt.Errorf("angle: %w", err)
	}
	magnitude, err := strconv.ParseFloat(md.GetArg(1), 32)
	if err != nil {
		return fmt.Errorf("magnitude: %w", err)
	}

	v, s := analog.Solve(m, float32(angle), float32(magnitude))
	fmt.Fprintf(md.Output, "%.6f, %.6f\n", v.X, v.Y)
	fmt.Fprintf(md.Output, "%d, %d\n", s.X, s.Y)

	return nil
}

func perform(ctx context.Context, md *modalflag.Modes, cfg environment.Config) error {
	md.NewMode()

	duration := md.AddDuration("duration", 5*time.Second, "run duration")
	profile := md.AddString("profile", "none", "create profiling reports: cpu, mem, trace, all or none")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	pth, err := scriptArg(md, cfg)
	if err != nil {
		return err
	}

	prf, err := performance.ParseProfile(*profile)
	if err != nil {
		return err
	}

	return performance.Check(ctx, md.Output, prf, pth, *duration, cfg.TickRate)
}
