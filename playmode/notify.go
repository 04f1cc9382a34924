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
	"github.com/jetsetilly/gophertas/logger"
	"github.com/jetsetilly/gophertas/notifications"
)

// logNotify writes notifications to the log.
type logNotify struct{}

func (logNotify) Notify(notice notifications.Notice, detail string) error {
	if detail == "" {
		logger.Log(logger.Allow, "notify", notice)
	} else {
		logger.Logf(logger.Allow, "notify", "%s: %s", notice, detail)
	}
	return nil
}
