package state

import "errors"

// ErrBadSnapshot indicates a Restore payload that is not a JSON object.
var ErrBadSnapshot = errors.New("state: snapshot is not a JSON object")

// defaultDoc is the documented default state tree.
//
//   - user:     identity of the signed-in athlete, nil when anonymous
//   - auth:     derived authentication flags
//   - ui:       navigation and presentation state
//   - settings: athlete-editable preferences (FTP, zones, units)
//   - header:   summary stats shown in the navigation chrome
//   - data:     fetched analytics; the only subtree ClearCache resets
const defaultDoc = `{
	"user": null,
	"auth": {"isAuthenticated": false},
	"ui": {"currentPage": "", "theme": "dark"},
	"settings": {},
	"header": {},
	"data": {}
}`

// defaultKeys lists the top-level keys of defaultDoc in the order Reset
// applies them.
var defaultKeys = []string{"user", "auth", "ui", "settings", "header", "data"}
