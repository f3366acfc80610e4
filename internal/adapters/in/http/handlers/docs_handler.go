package handlers

import (
	"html/template"
	"log"
	"net/http"
)

type docError struct {
	Status string
	Body   string
}

type docEndpoint struct {
	Title       string
	Route       string
	Description string
	Params      []string
	Status      string
	Response    string
	Errors      []docError
}

var toggleErrors = []docError{
	{"400 Bad Request", errorBody(msgNeedIDs)},
	{"400 Bad Request", errorBody(msgBadSlotID)},
	{"404 Not Found", errorBody(msgNoVenue)},
	{"404 Not Found", errorBody(msgNoSlot)},
	{"500 Internal Server Error", internalBody(msgUpdateFailed)},
}

const toggleResponse = `{
  "message": "Slot status updated successfully.",
  "slot": {
    "slotid": 1,
    "status": true,
    "carnumber": null
  }
}`

var docEndpoints = []docEndpoint{
	{
		Title:       "1. Register a Venue",
		Route:       "POST /register-venue/:name/:totalspots/:smartspots/:venueid",
		Description: "Registers a new venue with the provided details.",
		Params: []string{
			"name: Name of the venue (string).",
			"totalspots: Total number of parking spots (positive integer).",
			"smartspots: Number of smart parking spots (non-negative integer, ≤ totalspots, at most 10000).",
			"venueid: Unique ID for the venue (string).",
		},
		Status: "201 Created",
		Response: `{
  "message": "Venue registered successfully.",
  "venue": {
    "name": "Venue Name",
    "venueid": "venue123",
    "totalspots": 50,
    "smartspots": 20
  },
  "slots": [
    { "slotid": 1, "status": false, "carnumber": null },
    ...
  ]
}`,
		Errors: []docError{
			{"400 Bad Request", errorBody(msgMissing)},
			{"400 Bad Request", errorBody(msgBadTotal)},
			{"400 Bad Request", errorBody(msgBadSmart)},
			{"400 Bad Request", errorBody(msgTooManySmart)},
			{"409 Conflict", errorBody(msgConflict)},
			{"500 Internal Server Error", internalBody(msgRegisterFailed)},
		},
	},
	{
		Title:       "2. Fetch Slots for a Venue",
		Route:       "GET /fetchslots/venueid=:venueid",
		Description: "Fetches the parking slots for a specific venue.",
		Params:      []string{"venueid: Unique ID of the venue (string)."},
		Status:      "200 OK",
		Response: `{
  "message": "Venue slots fetched successfully.",
  "venue": {
    "name": "Venue Name",
    "venueid": "venue123",
    "totalspots": 50,
    "smartspots": 20,
    "slots": [
      { "slotid": 1, "status": false, "carnumber": null },
      ...
    ]
  }
}`,
		Errors: []docError{
			{"400 Bad Request", errorBody(msgNeedVenueID)},
			{"404 Not Found", errorBody(msgNoVenueFetch)},
			{"500 Internal Server Error", internalBody(msgFetchFailed)},
		},
	},
	{
		Title:       "3. Update Slot Status",
		Route:       "POST /updateslot/venueid=:venueid/slotid=:slotid",
		Description: "Updates the status of a specific parking slot (toggles between occupied and available).",
		Params: []string{
			"venueid: Unique ID of the venue (string).",
			"slotid: ID of the slot to update (integer).",
		},
		Status:   "200 OK",
		Response: toggleResponse,
		Errors:   toggleErrors,
	},
	{
		Title:       "4. Block a Slot",
		Route:       "GET /blockslot/venueid=:venueid/slotid=:slotid",
		Description: "Blocks or unblocks a specific parking slot (toggles status).",
		Params: []string{
			"venueid: Unique ID of the venue (string).",
			"slotid: ID of the slot to block/unblock (integer).",
		},
		Status:   "200 OK",
		Response: toggleResponse,
		Errors:   toggleErrors,
	},
}

func errorBody(msg string) string {
	return "{\n  \"error\": \"" + msg + "\"\n}"
}

func internalBody(msg string) string {
	return "{\n  \"error\": \"" + msg + "\",\n  \"details\": \"Error message details\"\n}"
}

var docsTemplate = template.Must(template.New("docs").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="UTF-8">
  <meta name="viewport" content="width=device-width, initial-scale=1.0">
  <title>API Documentation</title>
  <style>
    body { font-family: Arial, sans-serif; line-height: 1.6; padding: 20px; background-color: #f4f4f4; }
    h1, h2, h3 { color: #333; }
    code { background-color: #eee; padding: 2px 5px; border-radius: 3px; }
    pre { background-color: #eee; padding: 10px; border-radius: 5px; overflow-x: auto; }
    .endpoint { margin-bottom: 20px; padding: 15px; background-color: #fff; border-radius: 5px; box-shadow: 0 2px 5px rgba(0,0,0,0.1); }
  </style>
</head>
<body>
  <h1>API Documentation</h1>
  <p>This is the documentation for the SmartSpot API. Below are the available endpoints, their expected inputs, and responses.</p>
{{range .}}
  <div class="endpoint">
    <h2>{{.Title}}</h2>
    <p><strong>Endpoint:</strong> <code>{{.Route}}</code></p>
    <p><strong>Description:</strong> {{.Description}}</p>
    <p><strong>Parameters:</strong></p>
    <ul>{{range .Params}}
      <li>{{.}}</li>{{end}}
    </ul>
    <p><strong>Response:</strong></p>
    <p><strong>Status Code:</strong> <code>{{.Status}}</code></p>
    <pre>{{.Response}}</pre>
    <p><strong>Error Responses:</strong></p>{{range .Errors}}
    <p><strong>Status Code:</strong> <code>{{.Status}}</code></p>
    <pre>{{.Body}}</pre>{{end}}
  </div>
{{end}}
</body>
</html>
`))

// Docs serves the human-readable API reference at GET /.
func Docs(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := docsTemplate.Execute(w, docEndpoints); err != nil {
		log.Printf("[http] WARN: render docs: %v", err)
	}
}
