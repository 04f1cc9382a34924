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

package notifications_test

import (
	"errors"
	"testing"

	"github.com/jetsetilly/gophertas/notifications"
	"github.com/jetsetilly/gophertas/test"
)

type recorder struct {
	notices []notifications.Notice
	err     error
}

func (r *recorder) Notify(notice notifications.Notice, _ string) error {
	r.notices = append(r.notices, notice)
	return r.err
}

func TestMulti(t *testing.T) {
	a := &recorder{err: errors.New("a")}
	b := &recorder{}

	m := notifications.Multi{a, nil, b, notifications.Discard{}}
	err := m.Notify(notifications.NotifySavestateSaved, "")
	test.ExpectFailure(t, err)
	test.ExpectEquality(t, len(a.notices), 1)
	test.ExpectEquality(t, len(b.notices), 1)
	test.ExpectEquality(t, b.notices[0], notifications.NotifySavestateSaved)
}
