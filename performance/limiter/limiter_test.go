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

package limiter_test

import (
	"context"
	"testing"
	"time"

	"github.com/jetsetilly/gophertas/curated"
	"github.com/jetsetilly/gophertas/performance/limiter"
	"github.com/jetsetilly/gophertas/test"
)

func TestTicker(t *testing.T) {
	_, err := limiter.NewTicker(0)
	test.ExpectSuccess(t, curated.Is(err, limiter.LimitError))

	lim, err := limiter.NewTicker(1000)
	test.DemandSuccess(t, err)
	defer lim.Stop()

	start := time.Now()
	for range 10 {
		test.ExpectSuccess(t, lim.Wait(context.Background()))
	}
	test.ExpectSuccess(t, time.Since(start) >= 5*time.Millisecond)

	test.DemandSuccess(t, lim.SetLimit(1))
	test.ExpectEquality(t, lim.Limit(), 1)
	test.ExpectFailure(t, lim.SetLimit(-1))
}

func TestCancel(t *testing.T) {
	lim, err := limiter.NewTicker(1)
	test.DemandSuccess(t, err)
	defer lim.Stop()

	test.ExpectFailure(t, lim.HasWaited())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	test.ExpectFailure(t, lim.Wait(ctx))
}
