package controllers

import (
	"context"
	"strings"
	"sync"
	"time"

	"golang.org/x/crypto/bcrypt"

	"hotel-admin/models"
	"hotel-admin/services"
)

// In-memory stand-ins for the gorm-backed services. They follow the same
// ownership and error rules so handlers can be exercised end to end.

type fakeRoomService struct {
	mu     sync.Mutex
	nextID uint
	rooms  map[uint]models.Room
	groups map[uint]uint // group id -> owner
}

func newFakeRoomService() *fakeRoomService {
	return &fakeRoomService{rooms: map[uint]models.Room{}, groups: map[uint]uint{}}
}

func (f *fakeRoomService) List(_ context.Context, userID uint) ([]models.Room, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []models.Room{}
	for id := uint(1); id <= f.nextID; id++ {
		if r, ok := f.rooms[id]; ok && r.UserID == userID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeRoomService) check(userID, selfID uint, in services.RoomInput) error {
	if in.GroupID != nil && f.groups[*in.GroupID] != userID {
		return services.ErrInvalidReference
	}
	for _, r := range f.rooms {
		if r.UserID == userID && r.RoomNumber == in.RoomNumber && r.ID != selfID {
			return services.ErrDuplicateRoomNumber
		}
		mac := strings.TrimSpace(in.MacAddress)
		if mac != "" && strings.EqualFold(r.MacAddress, mac) && r.ID != selfID {
			return services.ErrDuplicateMac
		}
	}
	return nil
}

func (f *fakeRoomService) Create(_ context.Context, userID uint, in services.RoomInput) (*models.Room, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.check(userID, 0, in); err != nil {
		return nil, err
	}
	f.nextID++
	r := models.Room{
		ID: f.nextID, RoomNumber: in.RoomNumber, DeviceIP: in.DeviceIP, MacAddress: in.MacAddress,
		JVersion: in.JVersion, ActiveStatus: in.ActiveStatus, GroupID: in.GroupID, UserID: userID,
	}
	f.rooms[r.ID] = r
	return &r, nil
}

func (f *fakeRoomService) Update(_ context.Context, userID, id uint, in services.RoomInput) (*models.Room, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	r, ok := f.rooms[id]
	if !ok || r.UserID != userID {
		return nil, services.ErrNotFound
	}
	if err := f.check(userID, id, in); err != nil {
		return nil, err
	}
	r.RoomNumber, r.DeviceIP, r.MacAddress = in.RoomNumber, in.DeviceIP, in.MacAddress
	r.JVersion, r.ActiveStatus, r.GroupID = in.JVersion, in.ActiveStatus, in.GroupID
	f.rooms[id] = r
	return &r, nil
}

func (f *fakeRoomService) Delete(_ context.Context, userID, id uint) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	r, ok := f.rooms[id]
	if !ok || r.UserID != userID {
		return services.ErrNotFound
	}
	delete(f.rooms, id)
	return nil
}

type fakeGroupService struct {
	mu     sync.Mutex
	nextID uint
	groups map[uint]models.Group
	// rooms is notified of created groups so room validation sees them
	rooms *fakeRoomService
}

func newFakeGroupService(rooms *fakeRoomService) *fakeGroupService {
	return &fakeGroupService{groups: map[uint]models.Group{}, rooms: rooms}
}

func (f *fakeGroupService) List(_ context.Context, userID uint) ([]models.Group, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []models.Group{}
	for id := uint(1); id <= f.nextID; id++ {
		if g, ok := f.groups[id]; ok && g.UserID == userID {
			out = append(out, g)
		}
	}
	return out, nil
}

func (f *fakeGroupService) Create(_ context.Context, userID uint, name string) (*models.Group, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	g := models.Group{ID: f.nextID, Name: name, UserID: userID}
	f.groups[g.ID] = g
	if f.rooms != nil {
		f.rooms.mu.Lock()
		f.rooms.groups[g.ID] = userID
		f.rooms.mu.Unlock()
	}
	return &g, nil
}

func (f *fakeGroupService) Update(_ context.Context, userID, id uint, name string) (*models.Group, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	g, ok := f.groups[id]
	if !ok || g.UserID != userID {
		return nil, services.ErrNotFound
	}
	g.Name = name
	f.groups[id] = g
	return &g, nil
}

func (f *fakeGroupService) Delete(_ context.Context, userID, id uint) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	g, ok := f.groups[id]
	if !ok || g.UserID != userID {
		return services.ErrNotFound
	}
	delete(f.groups, id)
	return nil
}

type fakeAppService struct {
	mu     sync.Mutex
	nextID uint
	apps   map[uint]models.App
}

func newFakeAppService() *fakeAppService {
	return &fakeAppService{apps: map[uint]models.App{}}
}

func (f *fakeAppService) List(_ context.Context, userID uint) ([]models.App, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []models.App{}
	for id := uint(1); id <= f.nextID; id++ {
		if a, ok := f.apps[id]; ok && a.UserID == userID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (f *fakeAppService) Create(_ context.Context, userID uint, packageName string) (*models.App, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	a := models.App{ID: f.nextID, PackageName: packageName, UserID: userID}
	f.apps[a.ID] = a
	return &a, nil
}

func (f *fakeAppService) Update(_ context.Context, userID, id uint, packageName string) (*models.App, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	a, ok := f.apps[id]
	if !ok || a.UserID != userID {
		return nil, services.ErrNotFound
	}
	a.PackageName = packageName
	f.apps[id] = a
	return &a, nil
}

func (f *fakeAppService) Delete(_ context.Context, userID, id uint) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	a, ok := f.apps[id]
	if !ok || a.UserID != userID {
		return services.ErrNotFound
	}
	delete(f.apps, id)
	return nil
}

type fakeFacilityService struct {
	mu         sync.Mutex
	nextID     uint
	facilities map[uint]models.Facility
}

func newFakeFacilityService() *fakeFacilityService {
	return &fakeFacilityService{facilities: map[uint]models.Facility{}}
}

func (f *fakeFacilityService) List(_ context.Context, userID uint) ([]models.Facility, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []models.Facility{}
	for id := uint(1); id <= f.nextID; id++ {
		if v, ok := f.facilities[id]; ok && v.UserID == userID {
			out = append(out, v)
		}
	}
	return out, nil
}

func (f *fakeFacilityService) Create(_ context.Context, userID uint, in services.FacilityInput) (*models.Facility, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	now := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)
	v := models.Facility{
		ID: f.nextID, Category: in.Category, Title: in.Title, Language: in.Language,
		FileType: in.FileType, Content: in.Content, UserID: userID, CreatedAt: now, UpdatedAt: now,
	}
	f.facilities[v.ID] = v
	return &v, nil
}

func (f *fakeFacilityService) Update(_ context.Context, userID, id uint, in services.FacilityInput) (*models.Facility, string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	v, ok := f.facilities[id]
	if !ok || v.UserID != userID {
		return nil, "", services.ErrNotFound
	}
	replaced := ""
	if in.Content != "" {
		replaced = v.Content
		v.Content = in.Content
	}
	v.Category, v.Title, v.Language, v.FileType = in.Category, in.Title, in.Language, in.FileType
	f.facilities[id] = v
	return &v, replaced, nil
}

func (f *fakeFacilityService) Delete(_ context.Context, userID, id uint) (*models.Facility, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	v, ok := f.facilities[id]
	if !ok || v.UserID != userID {
		return nil, services.ErrNotFound
	}
	delete(f.facilities, id)
	return &v, nil
}

type fakeMessageService struct {
	mu       sync.Mutex
	nextID   uint
	messages map[uint]models.Message
	lastIn   services.MessageInput
	err      error
}

func newFakeMessageService() *fakeMessageService {
	return &fakeMessageService{messages: map[uint]models.Message{}}
}

func (f *fakeMessageService) List(_ context.Context, userID uint) ([]models.Message, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []models.Message{}
	for id := uint(1); id <= f.nextID; id++ {
		if m, ok := f.messages[id]; ok && m.UserID == userID {
			out = append(out, m)
		}
	}
	return out, nil
}

func (f *fakeMessageService) Create(_ context.Context, userID uint, in services.MessageInput) (*models.Message, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lastIn = in
	if f.err != nil {
		return nil, f.err
	}
	f.nextID++
	m := models.Message{
		ID: f.nextID, Title: in.Title, Description: in.Description, StartDate: in.StartDate, EndDate: in.EndDate,
		FileType: in.FileType, Content: in.Content, SelectedRooms: in.SelectedRooms, GroupID: in.GroupID, UserID: userID,
	}
	f.messages[m.ID] = m
	return &m, nil
}

func (f *fakeMessageService) Update(_ context.Context, userID, id uint, in services.MessageInput) (*models.Message, []string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lastIn = in
	m, ok := f.messages[id]
	if !ok || m.UserID != userID {
		return nil, nil, services.ErrNotFound
	}
	var replaced []string
	if in.Content != nil {
		replaced = m.Content
		m.Content = in.Content
	}
	m.Title, m.Description, m.StartDate, m.EndDate = in.Title, in.Description, in.StartDate, in.EndDate
	f.messages[id] = m
	return &m, replaced, nil
}

func (f *fakeMessageService) Delete(_ context.Context, userID, id uint) (*models.Message, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	m, ok := f.messages[id]
	if !ok || m.UserID != userID {
		return nil, services.ErrNotFound
	}
	delete(f.messages, id)
	return &m, nil
}

type fakeChannelService struct {
	mu       sync.Mutex
	nextID   uint
	channels map[uint]models.Channel
}

func newFakeChannelService() *fakeChannelService {
	return &fakeChannelService{channels: map[uint]models.Channel{}}
}

func (f *fakeChannelService) List(_ context.Context, userID uint) ([]models.Channel, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []models.Channel{}
	for id := uint(1); id <= f.nextID; id++ {
		if ch, ok := f.channels[id]; ok && ch.UserID == userID {
			out = append(out, ch)
		}
	}
	return out, nil
}

func (f *fakeChannelService) Create(_ context.Context, userID uint, in services.ChannelInput) (*models.Channel, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	ch := models.Channel{ID: f.nextID, Name: in.Name, URL: in.URL, Port: in.Port, Image: in.Image, UserID: userID}
	f.channels[ch.ID] = ch
	return &ch, nil
}

func (f *fakeChannelService) Update(_ context.Context, userID, id uint, in services.ChannelInput) (*models.Channel, string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	ch, ok := f.channels[id]
	if !ok || ch.UserID != userID {
		return nil, "", services.ErrNotFound
	}
	replaced := ""
	if in.Image != nil {
		if ch.Image != nil {
			replaced = *ch.Image
		}
		ch.Image = in.Image
	}
	ch.Name, ch.URL, ch.Port = in.Name, in.URL, in.Port
	f.channels[id] = ch
	return &ch, replaced, nil
}

func (f *fakeChannelService) Delete(_ context.Context, userID, id uint) (*models.Channel, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	ch, ok := f.channels[id]
	if !ok || ch.UserID != userID {
		return nil, services.ErrNotFound
	}
	delete(f.channels, id)
	return &ch, nil
}

type fakeBackgroundService struct {
	mu          sync.Mutex
	backgrounds map[string]models.Background
}

func newFakeBackgroundService() *fakeBackgroundService {
	return &fakeBackgroundService{backgrounds: map[string]models.Background{}}
}

func (f *fakeBackgroundService) List(_ context.Context, userID uint) ([]models.Background, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []models.Background{}
	for _, cat := range []string{models.BackgroundFacility, models.BackgroundLiveTV, models.BackgroundMessage} {
		if b, ok := f.backgrounds[cat]; ok && b.UserID == userID {
			out = append(out, b)
		}
	}
	return out, nil
}

func (f *fakeBackgroundService) Upsert(_ context.Context, userID uint, category, image string) (*models.Background, string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	b, ok := f.backgrounds[category]
	replaced := ""
	if ok {
		replaced = b.Image
	} else {
		b = models.Background{ID: uint(len(f.backgrounds) + 1), Category: category, UserID: userID}
	}
	b.Image = image
	f.backgrounds[category] = b
	return &b, replaced, nil
}

type fakeUserService struct {
	mu     sync.Mutex
	nextID uint
	users  map[uint]models.User
}

func newFakeUserService() *fakeUserService {
	return &fakeUserService{users: map[uint]models.User{}}
}

func (f *fakeUserService) Register(_ context.Context, in services.RegisterInput) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Username == in.Username || u.Email == in.Email {
			return nil, services.ErrDuplicateUser
		}
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.MinCost)
	if err != nil {
		return nil, err
	}
	f.nextID++
	u := models.User{ID: f.nextID, Username: in.Username, Email: in.Email, Password: string(hash)}
	f.users[u.ID] = u
	return &u, nil
}

func (f *fakeUserService) Authenticate(_ context.Context, email, password string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Email == email {
			if bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password)) != nil {
				return nil, services.ErrInvalidCredentials
			}
			return &u, nil
		}
	}
	return nil, services.ErrInvalidCredentials
}

func (f *fakeUserService) GetByID(_ context.Context, id uint) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[id]
	if !ok {
		return nil, services.ErrNotFound
	}
	return &u, nil
}

type fakeLauncherService struct {
	feed *services.LauncherFeed
	err  error
	mac  string
}

func (f *fakeLauncherService) Feed(_ context.Context, mac string, _ time.Time) (*services.LauncherFeed, error) {
	f.mac = mac
	return f.feed, f.err
}

type fakePinger struct{ err error }

func (p fakePinger) PingContext(context.Context) error { return p.err }
