package studybot

import (
	"sync"
	"time"
)

type WizardState int

const (
	StateWorkType WizardState = iota + 1
	StateSubject
	StateVolume
	StateDeadline
	StateAttachment
	StateComment
	StateContact
)

// Session accumulates the wizard's answers for one chat. It is created at
// wizard entry and destroyed at finalize or cancel.
type Session struct {
	Deadline time.Time
	WorkType string
	Subject  string
	Volume   string
	FilePath string
	Comment  string
	Contact  string
	State    WizardState
}

func (s *Session) complete() bool {
	return s.WorkType != "" && s.Subject != "" && s.Volume != "" && !s.Deadline.IsZero() && s.Contact != ""
}

// ChatMode marks what free text from a chat currently means.
type ChatMode int

const (
	ModeNone ChatMode = iota
	ModeSupport
	ModeReview
)

type AdminAction int

const (
	AdminIdle AdminAction = iota
	AdminAwaitingPrice
	AdminAwaitingBroadcast
	AdminAwaitingReviewReply
	AdminAwaitingMessageReply
)

type adminState struct {
	Action   AdminAction
	TargetID uint
}

type sessions struct {
	wizard  map[int64]*Session
	payment map[int64]uint
	mode    map[int64]ChatMode
	admin   adminState
	mu      sync.Mutex
}

func newSessions() *sessions {
	return &sessions{
		wizard:  make(map[int64]*Session),
		payment: make(map[int64]uint),
		mode:    make(map[int64]ChatMode),
	}
}

func (s *sessions) startWizard(chatID int64) *Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	session := &Session{State: StateWorkType}
	s.wizard[chatID] = session
	return session
}

func (s *sessions) getWizard(chatID int64) (*Session, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	session, ok := s.wizard[chatID]
	return session, ok
}

func (s *sessions) dropWizard(chatID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.wizard, chatID)
}

func (s *sessions) startPayment(chatID int64, orderID uint) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.payment[chatID] = orderID
}

func (s *sessions) getPayment(chatID int64) (uint, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	orderID, ok := s.payment[chatID]
	return orderID, ok
}

func (s *sessions) dropPayment(chatID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.payment, chatID)
}

func (s *sessions) setMode(chatID int64, mode ChatMode) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if mode == ModeNone {
		delete(s.mode, chatID)
		return
	}
	s.mode[chatID] = mode
}

func (s *sessions) getMode(chatID int64) ChatMode {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.mode[chatID]
}

func (s *sessions) setAdmin(action AdminAction, targetID uint) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.admin = adminState{Action: action, TargetID: targetID}
}

func (s *sessions) getAdmin() adminState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.admin
}

func (s *sessions) resetAdmin() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.admin = adminState{}
}
