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

// Package studio connects an external script editor to the playback engine.
//
// The Bridge serves a websocket at /studio. Every client receives the most
// recent tick summary as soon as it connects and every summary published
// after that. Notifications are forwarded to clients as toast messages.
//
// Clients send commands to the engine. For example:
//
//	{"type":"hotkey","id":"FrameAdvance"}
//	{"type":"hotkey","id":"FastForward","release":true}
//	{"type":"axis","value":0.5}
//	{"type":"reload"}
//
// Commands are delivered to the engine on its own goroutine with
// PushFunction(). A client that can not keep up with the rate of summaries is
// disconnected.
package studio
