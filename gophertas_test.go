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
	"os"
	"path/filepath"
	"testing"

	"github.com/jetsetilly/gophertas/test"
)

func TestHelp(t *testing.T) {
	w := &test.CompareWriter{}
	test.ExpectEquality(t, launch(context.Background(), []string{"-help"}, w), exitOK)
	test.ExpectSuccess(t, w.Contains("available sub-modes: RUN, SYNC, JOURNAL, ANALOG, PERFORMANCE, VERSION"))

	w.Clear()
	test.ExpectEquality(t, launch(context.Background(), []string{"version"}, w), exitOK)
	test.ExpectSuccess(t, w.Contains("Gophertas"))
}

func TestAnalogMode(t *testing.T) {
	w := &test.CompareWriter{}
	test.ExpectEquality(t, launch(context.Background(), []string{"analog", "-mode", "ignore", "90", "1"}, w), exitOK)
	test.ExpectSuccess(t, w.Contains("1.000000, 0.000000"))

	w.Clear()
	test.ExpectEquality(t, launch(context.Background(), []string{"analog", "90"}, w), exitModeError)
	test.ExpectSuccess(t, w.Contains("angle and magnitude required"))

	w.Clear()
	test.ExpectEquality(t, launch(context.Background(), []string{"analog", "-mode", "round", "90", "1"}, w), exitModeError)
}

func TestSyncAndJournal(t *testing.T) {
	dir := t.TempDir()
	db := filepath.Join(dir, "sync.db")

	good := filepath.Join(dir, "good.tas")
	test.DemandSuccess(t, os.WriteFile(good, []byte("30,R\n30,L\n"), 0o644))

	w := &test.CompareWriter{}
	test.ExpectEquality(t, launch(context.Background(), []string{"sync", "-db", db, good}, w), exitOK)
	test.ExpectSuccess(t, w.Contains("success (60 frames)"))

	w.Clear()
	test.ExpectEquality(t, launch(context.Background(), []string{"journal", "-db", db}, w), exitOK)
	test.ExpectSuccess(t, w.Contains("success"))
	test.ExpectSuccess(t, w.Contains("60/60"))

	bad := filepath.Join(dir, "bad.tas")
	test.DemandSuccess(t, os.WriteFile(bad, []byte("bad line\n"), 0o644))

	w.Clear()
	test.ExpectEquality(t, launch(context.Background(), []string{"sync", "-db", db, bad}, w), exitModeError)
	test.ExpectSuccess(t, w.Contains("sync check failed"))
}

func TestNoScript(t *testing.T) {
	t.Setenv("GOPHERTAS_SCRIPT", "")

	w := &test.CompareWriter{}
	test.ExpectEquality(t, launch(context.Background(), []string{"performance"}, w), exitModeError)
	test.ExpectSuccess(t, w.Contains("script required"))
}
