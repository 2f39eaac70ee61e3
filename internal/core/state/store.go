package state

// Store groups the containers of one session. It is built at session start
// and handed to every service and view that needs it.
type Store struct {
	Auth          *Auth
	Documents     *Documents
	Notifications *Notifications
	Dashboard     *Dashboard
	Search        *Search
	Users         *Users
}

// NewStore returns a store with every container in its initial state.
func NewStore() *Store {
	return &Store{
		Auth:          NewAuth(),
		Documents:     NewDocuments(),
		Notifications: NewNotifications(),
		Dashboard:     NewDashboard(),
		Search:        NewSearch(),
		Users:         NewUsers(),
	}
}

// Reset clears all domain data after the session ends. The auth container
// is cleared separately by the caller so it can record why.
func (s *Store) Reset() {
	s.Documents.Reset()
	s.Notifications.Reset()
	s.Dashboard.Reset()
	s.Search.Reset()
	s.Users.Reset()
}
