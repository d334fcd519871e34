package services

import "sync"

// UIState holds presentation flags shared across the terminal frontend:
// whether the sidebar is open and whether a page-level load is running.
// It is purely in-memory and safe for concurrent use.
type UIState struct {
	mu          sync.RWMutex
	sidebarOpen bool
	pageLoading bool
}

func NewUIState() *UIState {
	return &UIState{}
}

func (u *UIState) SidebarOpen() bool {
	u.mu.RLock()
	defer u.mu.RUnlock()
	return u.sidebarOpen
}

func (u *UIState) SetSidebarOpen(open bool) {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.sidebarOpen = open
}

// ToggleSidebar flips the sidebar flag and returns the new value.
func (u *UIState) ToggleSidebar() bool {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.sidebarOpen = !u.sidebarOpen
	return u.sidebarOpen
}

func (u *UIState) PageLoading() bool {
	u.mu.RLock()
	defer u.mu.RUnlock()
	return u.pageLoading
}

func (u *UIState) SetPageLoading(v bool) {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.pageLoading = v
}
