package studybot_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"go.uber.org/mock/gomock"

	"github.com/playmixer/studybot/internal/core/studybot"
	mockstore "github.com/playmixer/studybot/internal/mocks/store"
)

const (
	adminID    = int64(900)
	customerID = int64(700)
	chatID     = int64(700)
)

var customer = studybot.TgUser{
	ID:        customerID,
	Username:  "ivan",
	FirstName: "Иван",
}

var errUnreachable = errors.New("chat unreachable")

type sent struct {
	keyboard studybot.Keyboard
	chatID   int64
	text     string
	path     string
}

// fakeNotifier records outgoing messages. A non-zero failChat makes sends to
// that chat fail, err makes every send fail.
type fakeNotifier struct {
	err      error
	failChat int64
	texts    []sent
	files    []sent
}

func (f *fakeNotifier) SendText(_ context.Context, chatID int64, text string, keyboard studybot.Keyboard) error {
	if f.err != nil {
		return f.err
	}
	if f.failChat != 0 && chatID == f.failChat {
		return errUnreachable
	}
	f.texts = append(f.texts, sent{chatID: chatID, text: text, keyboard: keyboard})
	return nil
}

func (f *fakeNotifier) SendFile(_ context.Context, chatID int64, path, caption string, keyboard studybot.Keyboard) error {
	if f.err != nil {
		return f.err
	}
	if f.failChat != 0 && chatID == f.failChat {
		return errUnreachable
	}
	f.files = append(f.files, sent{chatID: chatID, path: path, text: caption, keyboard: keyboard})
	return nil
}

// fakeFiles is an in-memory FileStore.
type fakeFiles struct {
	err     error
	saved   map[string][]byte
	deleted []string
}

func newFakeFiles() *fakeFiles {
	return &fakeFiles{saved: map[string][]byte{}}
}

func (f *fakeFiles) Save(nameHint string, data []byte) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	path := filepath.Join("files", nameHint)
	f.saved[path] = data
	return path, nil
}

func (f *fakeFiles) Delete(path string) error {
	delete(f.saved, path)
	f.deleted = append(f.deleted, path)
	return nil
}

func newTestBot(t *testing.T, store *mockstore.MockStore, notify *fakeNotifier, files *fakeFiles) *studybot.Studybot {
	t.Helper()
	cfg := &studybot.Config{
		AdminID:     adminID,
		PaymentCard: "2202 2050 0031 5959",
	}
	return studybot.New(cfg, store, studybot.Files(files), studybot.Notify(notify))
}

func newMockStore(t *testing.T) *mockstore.MockStore {
	t.Helper()
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)
	return mockstore.NewMockStore(ctrl)
}
