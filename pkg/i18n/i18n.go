package i18n

import "staybooking/pkg/models"

type Key string

const (
	MyTrips            Key = "myTrips"
	ManagedRequests    Key = "managedRequests"
	NoBookings         Key = "noBookings"
	TotalPrice         Key = "totalPrice"
	Guest              Key = "guest"
	Guests             Key = "guests"
	PerNight           Key = "perNight"
	Host               Key = "host"
	HostedBy           Key = "hostedBy"
	Reviews            Key = "reviews"
	NoReviews          Key = "noReviews"
	AvailableRooms     Key = "availableRooms"
	NoRooms            Key = "noRooms"
	BookingSuccess     Key = "bookingSuccess"
	BookingError       Key = "bookingError"
	LoginToBook        Key = "loginToBook"
	LoginError         Key = "loginError"
	InvalidEmail       Key = "invalidEmail"
	EmailTaken         Key = "emailTaken"
	UnexpectedError    Key = "unexpectedError"
	LoggedInAs         Key = "loggedInAs"
	NotLoggedIn        Key = "notLoggedIn"
	LoggedOut          Key = "loggedOut"
	BookingConfirmed   Key = "bookingConfirmed"
	BookingRejected    Key = "bookingRejected"
	LoadBookingsFailed Key = "loadBookingsFailed"
)

var tables = map[models.Language]map[Key]string{
	models.LanguageEN: {
		MyTrips:            "My Trips",
		ManagedRequests:    "Requests for my properties",
		NoBookings:         "No bookings found.",
		TotalPrice:         "Total Price",
		Guest:              "Guest",
		Guests:             "guests",
		PerNight:           "per night",
		Host:               "Host",
		HostedBy:           "Hosted by",
		Reviews:            "Reviews",
		NoReviews:          "No reviews yet.",
		AvailableRooms:     "Available Rooms",
		NoRooms:            "No rooms match your search.",
		BookingSuccess:     "Booking successful!",
		BookingError:       "Error creating booking. Please check dates.",
		LoginToBook:        "Login to Book",
		LoginError:         "Invalid email or password.",
		InvalidEmail:       "Please enter a valid email address.",
		EmailTaken:         "This email is already registered.",
		UnexpectedError:    "An unexpected error occurred",
		LoggedInAs:         "Signed in as",
		NotLoggedIn:        "Not signed in.",
		LoggedOut:          "Signed out.",
		BookingConfirmed:   "Booking confirmed.",
		BookingRejected:    "Booking rejected.",
		LoadBookingsFailed: "Failed to load bookings",
	},
	models.LanguageDE: {
		MyTrips:            "Meine Reisen",
		ManagedRequests:    "Anfragen für meine Objekte",
		NoBookings:         "Keine Buchungen gefunden.",
		TotalPrice:         "Gesamtpreis",
		Guest:              "Gast",
		Guests:             "Gäste",
		PerNight:           "pro Nacht",
		Host:               "Gastgeber",
		HostedBy:           "Gastgeber:",
		Reviews:            "Bewertungen",
		AvailableRooms:     "Verfügbare Zimmer",
		BookingSuccess:     "Buchung erfolgreich!",
		BookingError:       "Fehler bei der Buchung. Daten prüfen.",
		LoginToBook:        "Anmelden zum Buchen",
		LoginError:         "Ungültige E-Mail oder Passwort.",
		InvalidEmail:       "Bitte geben Sie eine gültige E-Mail-Adresse ein.",
		EmailTaken:         "Diese E-Mail ist bereits registriert.",
		LoggedInAs:         "Angemeldet als",
		NotLoggedIn:        "Nicht angemeldet.",
		LoggedOut:          "Abgemeldet.",
		BookingConfirmed:   "Buchung bestätigt.",
		BookingRejected:    "Buchung abgelehnt.",
		LoadBookingsFailed: "Buchungen konnten nicht geladen werden",
	},
}

// T returns the text for key in lang, falling back to English and then to
// the key itself.
func T(lang models.Language, key Key) string {
	if s, ok := tables[lang][key]; ok {
		return s
	}
	if s, ok := tables[models.LanguageEN][key]; ok {
		return s
	}
	return string(key)
}
