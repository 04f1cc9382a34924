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

// Package paths contains functions to prepare paths to gophertas resources.
//
// The ResourcePath() function prepends the supplied resource with the
// appropriate config directory. For example, the following returns the path
// to the preferences file.
//
//	p, err := paths.ResourcePath("", "preferences")
//
// In development builds, if a directory called ".gophertas" exists in the
// current directory then that is the base path that will be used. Otherwise,
// and always in builds with the release tag, the user's config directory is
// used (see os.UserConfigDir() in the standard library).
//
// On a modern Linux system the path returned in the example above, for a
// release build, will be:
//
//	/home/user/.config/gophertas/preferences
//
// Sub-directories are created as required. The file itself is not.
package paths
