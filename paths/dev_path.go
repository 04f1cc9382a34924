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

//go:build !release

package paths

import "os"

// local resource directory. used in preference to the user config directory
// if it exists in the current working directory.
const localDir = ".gophertas"

func getBasePath() (string, error) {
	if info, err := os.Stat(localDir); err == nil && info.IsDir() {
		return localDir, nil
	}
	return userConfigPath()
}
