// Package config loads and stores the maps served by the robot navigator.
//
// Maps live in a single directory as either JSON map definitions (*.json)
// or the plain-text format read by package mapfile (*.txt). A map is
// addressed by its file name without the extension.
//
// Usage:
//
//	manager, err := config.NewManager("maps")
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	def, err := manager.LoadMap("map3")
//	maps, err := manager.ListMaps()
//
// The default map is default.json or default.txt when present, otherwise
// the first map in the directory, otherwise a built-in 5x11 map.
package config
