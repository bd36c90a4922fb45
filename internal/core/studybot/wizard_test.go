package studybot_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/playmixer/studybot/internal/adapters/store/model"
	"github.com/playmixer/studybot/internal/core/studybot"
)

func TestStudybot_SetWorkType(t *testing.T) {
	tests := []struct {
		err      error
		name     string
		workType string
		session  bool
	}{
		{name: "known type", workType: "essay", session: true},
		{name: "unknown type", workType: "thesis", session: true, err: studybot.ErrWorkTypeUnknown},
		{name: "no session", workType: "essay", err: studybot.ErrNoSession},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bot := newTestBot(t, newMockStore(t), &fakeNotifier{}, newFakeFiles())
			if tt.session {
				bot.StartWizard(chatID)
			}

			err := bot.SetWorkType(chatID, tt.workType)
			assert.ErrorIs(t, err, tt.err)

			if tt.err == nil {
				state, ok := bot.WizardState(chatID)
				assert.True(t, ok)
				assert.Equal(t, studybot.StateSubject, state)
			}
		})
	}
}

func TestStudybot_SetSubject(t *testing.T) {
	tests := []struct {
		err     error
		name    string
		subject string
	}{
		{name: "ok", subject: "Математический анализ"},
		{name: "trimmed to short", subject: "  ab  ", err: studybot.ErrSubjectTooShort},
		{name: "short", subject: "ab", err: studybot.ErrSubjectTooShort},
		{name: "three cyrillic runes", subject: "физ"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bot := newTestBot(t, newMockStore(t), &fakeNotifier{}, newFakeFiles())
			bot.StartWizard(chatID)
			require.NoError(t, bot.SetWorkType(chatID, "essay"))

			err := bot.SetSubject(chatID, tt.subject)
			assert.ErrorIs(t, err, tt.err)
		})
	}
}

func TestStudybot_SetVolume(t *testing.T) {
	tests := []struct {
		err    error
		name   string
		volume string
	}{
		{name: "pages", volume: "20"},
		{name: "fractional", volume: "2.5"},
		{name: "words", volume: "twenty", err: studybot.ErrVolumeNotNumeric},
		{name: "negative", volume: "-3", err: studybot.ErrVolumeNotNumeric},
		{name: "zero", volume: "0", err: studybot.ErrVolumeNotNumeric},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bot := newTestBot(t, newMockStore(t), &fakeNotifier{}, newFakeFiles())
			bot.StartWizard(chatID)
			require.NoError(t, bot.SetWorkType(chatID, "essay"))
			require.NoError(t, bot.SetSubject(chatID, "Философия"))

			err := bot.SetVolume(chatID, tt.volume)
			assert.ErrorIs(t, err, tt.err)
		})
	}
}

func TestStudybot_SetDeadline(t *testing.T) {
	now := time.Now()
	tests := []struct {
		err      error
		name     string
		deadline string
	}{
		{name: "next week", deadline: now.AddDate(0, 0, 7).Format("02.01.2006")},
		{name: "year ahead", deadline: now.AddDate(0, 0, 365).Format("02.01.2006")},
		{name: "over a year", deadline: now.AddDate(0, 0, 366).Format("02.01.2006"), err: studybot.ErrDeadlineTooFar},
		{name: "yesterday", deadline: now.AddDate(0, 0, -1).Format("02.01.2006"), err: studybot.ErrDeadlinePast},
		{name: "wrong layout", deadline: now.AddDate(0, 0, 7).Format("2006-01-02"), err: studybot.ErrDeadlineFormat},
		{name: "garbage", deadline: "завтра", err: studybot.ErrDeadlineFormat},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bot := newTestBot(t, newMockStore(t), &fakeNotifier{}, newFakeFiles())
			bot.StartWizard(chatID)
			require.NoError(t, bot.SetWorkType(chatID, "essay"))
			require.NoError(t, bot.SetSubject(chatID, "Философия"))
			require.NoError(t, bot.SetVolume(chatID, "10"))

			err := bot.SetDeadline(chatID, tt.deadline)
			assert.ErrorIs(t, err, tt.err)
		})
	}
}

func TestStudybot_SetAttachment(t *testing.T) {
	tests := []struct {
		err      error
		name     string
		fileName string
	}{
		{name: "pdf", fileName: "task.pdf"},
		{name: "docx", fileName: "Задание.DOCX"},
		{name: "photo", fileName: "photo.jpg"},
		{name: "executable", fileName: "task.exe", err: studybot.ErrAttachmentType},
		{name: "no extension", fileName: "task", err: studybot.ErrAttachmentType},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			files := newFakeFiles()
			bot := newTestBot(t, newMockStore(t), &fakeNotifier{}, files)
			bot.StartWizard(chatID)
			require.NoError(t, bot.SetWorkType(chatID, "essay"))
			require.NoError(t, bot.SetSubject(chatID, "Философия"))
			require.NoError(t, bot.SetVolume(chatID, "10"))
			require.NoError(t, bot.SetDeadline(chatID, time.Now().AddDate(0, 0, 7).Format("02.01.2006")))

			err := bot.SetAttachment(chatID, tt.fileName, []byte("content"))
			assert.ErrorIs(t, err, tt.err)

			if tt.err != nil {
				assert.Empty(t, files.saved)
			}
		})
	}
}

func TestStudybot_FinalizeOrder(t *testing.T) {
	ctx := context.Background()
	storeMock := newMockStore(t)
	notify := &fakeNotifier{}
	bot := newTestBot(t, storeMock, notify, newFakeFiles())

	storeMock.EXPECT().
		GetOrCreateUser(ctx, customerID, "ivan", "Иван", "").
		Return(model.User{ID: 1, TelegramID: customerID, FirstName: "Иван"}, nil).
		Times(1)
	storeMock.EXPECT().
		CreateOrder(ctx, gomock.Any()).
		DoAndReturn(func(_ context.Context, order *model.Order) error {
			order.ID = 42
			return nil
		}).
		Times(1)

	bot.StartWizard(chatID)
	require.NoError(t, bot.SetWorkType(chatID, "essay"))
	require.NoError(t, bot.SetSubject(chatID, "Философия"))
	require.NoError(t, bot.SetVolume(chatID, "10"))
	require.NoError(t, bot.SetDeadline(chatID, time.Now().AddDate(0, 0, 7).Format("02.01.2006")))
	require.NoError(t, bot.SetAttachment(chatID, "task.pdf", []byte("content")))
	require.NoError(t, bot.SetComment(chatID, "-"))

	order, err := bot.FinalizeOrder(ctx, chatID, "@ivan", customer)
	require.NoError(t, err)

	assert.Equal(t, uint(42), order.ID)
	assert.Equal(t, model.OrderStatePending, order.Status)
	assert.Equal(t, float64(500), order.Price)
	assert.Empty(t, order.Comment)
	assert.Equal(t, "@ivan", order.ContactInfo)

	// admin got the new order card with the attachment
	require.Len(t, notify.files, 1)
	assert.Equal(t, adminID, notify.files[0].chatID)

	// the session is gone
	_, ok := bot.WizardState(chatID)
	assert.False(t, ok)
}

func TestStudybot_FinalizeOrder_Incomplete(t *testing.T) {
	bot := newTestBot(t, newMockStore(t), &fakeNotifier{}, newFakeFiles())
	bot.StartWizard(chatID)
	require.NoError(t, bot.SetWorkType(chatID, "essay"))

	_, err := bot.FinalizeOrder(context.Background(), chatID, "@ivan", customer)
	assert.ErrorIs(t, err, studybot.ErrOrderIncomplete)
}

func TestStudybot_FinalizeOrder_AdminUnreachable(t *testing.T) {
	ctx := context.Background()
	storeMock := newMockStore(t)
	notify := &fakeNotifier{failChat: adminID}
	bot := newTestBot(t, storeMock, notify, newFakeFiles())

	storeMock.EXPECT().
		GetOrCreateUser(ctx, customerID, "ivan", "Иван", "").
		Return(model.User{ID: 1}, nil).
		Times(1)
	storeMock.EXPECT().CreateOrder(ctx, gomock.Any()).Return(nil).Times(1)

	bot.StartWizard(chatID)
	require.NoError(t, bot.SetWorkType(chatID, "coursework"))
	require.NoError(t, bot.SetSubject(chatID, "История"))
	require.NoError(t, bot.SetVolume(chatID, "30"))
	require.NoError(t, bot.SetDeadline(chatID, time.Now().AddDate(0, 0, 30).Format("02.01.2006")))
	require.NoError(t, bot.SetComment(chatID, "срочно"))

	// the order survives a lost admin notification
	_, err := bot.FinalizeOrder(ctx, chatID, "@ivan", customer)
	assert.NoError(t, err)
}

func TestStudybot_CancelWizard(t *testing.T) {
	files := newFakeFiles()
	bot := newTestBot(t, newMockStore(t), &fakeNotifier{}, files)

	bot.StartWizard(chatID)
	require.NoError(t, bot.SetWorkType(chatID, "essay"))
	require.NoError(t, bot.SetSubject(chatID, "Философия"))
	require.NoError(t, bot.SetVolume(chatID, "10"))
	require.NoError(t, bot.SetDeadline(chatID, time.Now().AddDate(0, 0, 7).Format("02.01.2006")))
	require.NoError(t, bot.SetAttachment(chatID, "task.pdf", []byte("content")))

	bot.CancelWizard(chatID)

	// no session, no file, nothing persisted
	_, ok := bot.WizardState(chatID)
	assert.False(t, ok)
	assert.Empty(t, files.saved)
	assert.NotEmpty(t, files.deleted)
}

func TestStudybot_StartWizard_ReplacesSession(t *testing.T) {
	files := newFakeFiles()
	bot := newTestBot(t, newMockStore(t), &fakeNotifier{}, files)

	bot.StartWizard(chatID)
	require.NoError(t, bot.SetWorkType(chatID, "essay"))
	require.NoError(t, bot.SetSubject(chatID, "Философия"))
	require.NoError(t, bot.SetVolume(chatID, "10"))
	require.NoError(t, bot.SetDeadline(chatID, time.Now().AddDate(0, 0, 7).Format("02.01.2006")))
	require.NoError(t, bot.SetAttachment(chatID, "task.pdf", []byte("content")))

	bot.StartWizard(chatID)

	state, ok := bot.WizardState(chatID)
	assert.True(t, ok)
	assert.Equal(t, studybot.StateWorkType, state)
	assert.Empty(t, files.saved)
}
