package zerotest

import (
	"fmt"
	"sort"
	"strconv"
	"sync"
)

// User is a stored user record.
type User struct {
	ID       string
	Name     string
	Username string
	Email    string
	Phone    string
	Website  string
}

// Album is a stored album record. UserID may point at no user.
type Album struct {
	ID     string
	Title  string
	UserID string
}

// Store holds the records served by Server. Created records persist until
// deleted. Reads return copies.
type Store struct {
	mu        sync.RWMutex
	users     map[string]User
	albums    map[string]Album
	nextUser  int
	nextAlbum int
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{
		users:     make(map[string]User),
		albums:    make(map[string]Album),
		nextUser:  1,
		nextAlbum: 1,
	}
}

var seedUsers = []User{
	{Name: "Leanne Graham", Username: "Bret", Email: "Sincere@april.biz", Phone: "1-770-736-8031 x56442", Website: "hildegard.org"},
	{Name: "Ervin Howell", Username: "Antonette", Email: "Shanna@melissa.tv", Phone: "010-692-6593 x09125", Website: "anastasia.net"},
	{Name: "Clementine Bauch", Username: "Samantha", Email: "Nathan@yesenia.net", Phone: "1-463-123-4447", Website: "ramiro.info"},
	{Name: "Patricia Lebsack", Username: "Karianne", Email: "Julianne.OConner@kory.org", Phone: "493-170-9623 x156", Website: "kale.biz"},
	{Name: "Chelsey Dietrich", Username: "Kamren", Email: "Lucio_Hettinger@annie.ca", Phone: "(254)954-1289", Website: "demarco.info"},
	{Name: "Mrs. Dennis Schulist", Username: "Leopoldo_Corkery", Email: "Karley_Dach@jasper.info", Phone: "1-477-935-8478 x6430", Website: "ola.org"},
	{Name: "Kurtis Weissnat", Username: "Elwyn.Skiles", Email: "Telly.Hoeger@billy.biz", Phone: "210.067.6132", Website: "elvis.io"},
	{Name: "Nicholas Runolfsdottir V", Username: "Maxime_Nienow", Email: "Sherwood@rosamond.me", Phone: "586.493.6943 x140", Website: "jacynthe.com"},
	{Name: "Glenna Reichert", Username: "Delphine", Email: "Chaim_McDermott@dana.io", Phone: "(775)976-6794 x41206", Website: "conrad.com"},
	{Name: "Clementina DuBuque", Username: "Moriah.Stanton", Email: "Rey.Padberg@karina.biz", Phone: "024-648-3804", Website: "ambrose.net"},
}

// AlbumsPerUser is the number of seeded albums owned by each seeded user.
const AlbumsPerUser = 10

// SeededStore returns a store holding 10 users with ids 1..10 and 100
// albums with ids 1..100, ten per user in id order.
func SeededStore() *Store {
	s := NewStore()
	for _, u := range seedUsers {
		created := s.AddUser(u)
		for i := 0; i < AlbumsPerUser; i++ {
			s.AddAlbum(Album{
				Title:  fmt.Sprintf("%s album %d", u.Username, i+1),
				UserID: created.ID,
			})
		}
	}
	return s
}

// AddUser stores u under the next free id and returns the stored copy.
func (s *Store) AddUser(u User) User {
	s.mu.Lock()
	defer s.mu.Unlock()

	u.ID = strconv.Itoa(s.nextUser)
	s.nextUser++
	s.users[u.ID] = u
	return u
}

// AddAlbum stores a under the next free id. The owner is not checked.
func (s *Store) AddAlbum(a Album) Album {
	s.mu.Lock()
	defer s.mu.Unlock()

	a.ID = strconv.Itoa(s.nextAlbum)
	s.nextAlbum++
	s.albums[a.ID] = a
	return a
}

// User returns the user with id.
func (s *Store) User(id string) (User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.users[id]
	return u, ok
}

// Album returns the album with id.
func (s *Store) Album(id string) (Album, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	a, ok := s.albums[id]
	return a, ok
}

// Users returns every user ordered by numeric id.
func (s *Store) Users() []User {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]User, 0, len(s.users))
	for _, u := range s.users {
		out = append(out, u)
	}
	sort.Slice(out, func(i, j int) bool { return idLess(out[i].ID, out[j].ID) })
	return out
}

// Albums returns every album ordered by numeric id. A non-empty userID
// restricts the result to that owner.
func (s *Store) Albums(userID string) []Album {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Album, 0, len(s.albums))
	for _, a := range s.albums {
		if userID != "" && a.UserID != userID {
			continue
		}
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool { return idLess(out[i].ID, out[j].ID) })
	return out
}

// DeleteUser removes a user. Albums pointing at it are kept.
func (s *Store) DeleteUser(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, ok := s.users[id]
	delete(s.users, id)
	return ok
}

// DeleteAlbum removes an album.
func (s *Store) DeleteAlbum(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, ok := s.albums[id]
	delete(s.albums, id)
	return ok
}

func idLess(a, b string) bool {
	ai, aerr := strconv.Atoi(a)
	bi, berr := strconv.Atoi(b)
	if aerr == nil && berr == nil {
		return ai < bi
	}
	return a < b
}
