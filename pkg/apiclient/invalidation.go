package apiclient

// Colecciones cacheables del API.
const (
	Songs          = "songs"
	Contacts       = "contacts"
	Deals          = "deals"
	Payments       = "payments"
	Pitches        = "pitches"
	Templates      = "templates"
	EmailTemplates = "email-templates"
	Attachments    = "attachments"
	Invoices       = "invoices"
	Expenses       = "expenses"
	Workflows      = "workflows"
	Playlists      = "playlists"
	CalendarEvents = "calendar-events"
	Dashboard      = "dashboard"

	// Import no es una colección: la importación escribe deals, canciones y contactos.
	Import = "import"
)

// dependents colecciones cuyos datos cambian cuando se escribe en la clave.
var dependents = map[string][]string{
	Songs:          {Songs, Deals, Playlists, Dashboard},
	Contacts:       {Contacts, Deals, Playlists, Dashboard},
	Deals:          {Deals, Dashboard, Pitches, Payments, CalendarEvents},
	Payments:       {Payments, Dashboard},
	Pitches:        {Pitches, Dashboard},
	Templates:      {Templates},
	EmailTemplates: {EmailTemplates, Workflows},
	Attachments:    {Attachments},
	Invoices:       {Invoices},
	Expenses:       {Expenses},
	Workflows:      {Workflows},
	Playlists:      {Playlists},
	CalendarEvents: {CalendarEvents, Dashboard},
	Dashboard:      {Dashboard},
	Import:         {Deals, Songs, Contacts, Dashboard},
}

// InvalidationKeys colecciones a invalidar tras una escritura en collection.
// Una colección desconocida solo se invalida a sí misma.
func InvalidationKeys(collection string) []string {
	keys, ok := dependents[collection]
	if !ok {
		return []string{collection}
	}
	out := make([]string, len(keys))
	copy(out, keys)
	return out
}
