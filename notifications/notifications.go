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

package notifications

// Notice describes events that somehow change the presentation of the
// playback. These notifications can be used to present additional information
// to the user.
type Notice string

// List of defined notifications.
const (
	NotifyPlaybackStarted Notice = "NotifyPlaybackStarted"
	NotifyPlaybackStopped Notice = "NotifyPlaybackStopped"

	// frame step (pause) mode has been entered
	NotifyFrameStepEntered Notice = "NotifyFrameStepEntered"

	// playback has reached a fast-forward marker or label
	NotifyBreakpointReached Notice = "NotifyBreakpointReached"

	NotifySavestateSaved       Notice = "NotifySavestateSaved"
	NotifySavestateLoaded      Notice = "NotifySavestateLoaded"
	NotifySavestateCleared     Notice = "NotifySavestateCleared"
	NotifySavestateInvalidated Notice = "NotifySavestateInvalidated"

	// a file used by the script has changed on disk
	NotifyScriptReloaded Notice = "NotifyScriptReloaded"

	// the room reported by the host does not match the room label in the
	// script
	NotifyRoomLabelMismatch Notice = "NotifyRoomLabelMismatch"

	// input was stopped because the host was in an unsafe scene
	NotifyUnsafeInput Notice = "NotifyUnsafeInput"
)

// Notify is used to send notifications. The detail string is optional and
// may be empty.
type Notify interface {
	Notify(notice Notice, detail string) error
}

// Discard is an implementation of Notify that does nothing.
type Discard struct{}

// Notify implements the Notify interface.
func (Discard) Notify(_ Notice, _ string) error {
	return nil
}

// Multi sends notifications to more than one Notify implementation. The first
// error encountered is returned but all implementations are notified.
type Multi []Notify

// Notify implements the Notify interface.
func (m Multi) Notify(notice Notice, detail string) error {
	var first error
	for _, n := range m {
		if n == nil {
			continue
		}
		if err := n.Notify(notice, detail); err != nil && first == nil {
			first = err
		}
	}
	return first
}
