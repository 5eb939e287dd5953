package profile

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/candyhouse/talent-profile/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// fakeAPI is an in-memory ResumeAPI.
type fakeAPI struct {
	mu        sync.Mutex
	patch     types.ResumePatch
	getErr    error
	putErr    error
	gets      int
	saved     []types.Resume
	duringGet func()
}

func (f *fakeAPI) GetResume(_ context.Context) (types.ResumePatch, error) {
	f.mu.Lock()
	f.gets++
	hook := f.duringGet
	f.mu.Unlock()
	if hook != nil {
		hook()
	}
	if f.getErr != nil {
		return types.ResumePatch{}, f.getErr
	}
	return f.patch, nil
}

func (f *fakeAPI) PutResume(_ context.Context, resume types.Resume) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.putErr != nil {
		return f.putErr
	}
	f.saved = append(f.saved, resume)
	return nil
}

// recorder captures every state notified to a subscriber.
type recorder struct {
	states []State
}

func (r *recorder) record(st State) {
	r.states = append(r.states, st)
}

var fixedNow = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

func newTestStore(api ResumeAPI) (*Store, *recorder) {
	s := NewStore(api, WithClock(func() time.Time { return fixedNow }))
	rec := &recorder{}
	s.Subscribe(rec.record)
	return s, rec
}

func strPtr(s string) *string { return &s }

func TestGetProfile_FreshSkipsFetch(t *testing.T) {
	tests := []struct {
		name       string
		lastUpdate time.Time
	}{
		{name: "just now", lastUpdate: fixedNow},
		{name: "one second ago", lastUpdate: fixedNow.Add(-time.Second)},
		{name: "just under five minutes", lastUpdate: fixedNow.Add(-299 * time.Second)},
		{name: "in the future", lastUpdate: fixedNow.Add(time.Hour)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			api := &fakeAPI{}
			s, rec := newTestStore(api)

			outcome := s.GetProfile(context.Background(), tt.lastUpdate)

			assert.Equal(t, OutcomeSkipped, outcome)
			assert.Empty(t, rec.states)
			assert.Equal(t, 0, api.gets)
			assert.Equal(t, DefaultState(), s.State())
		})
	}
}

func TestGetProfile_StaleSuccess(t *testing.T) {
	api := &fakeAPI{patch: types.ResumePatch{FirstName: strPtr("Ada")}}
	s, rec := newTestStore(api)

	outcome := s.GetProfile(context.Background(), fixedNow.Add(-300*time.Second))

	assert.Equal(t, OutcomeDone, outcome)
	assert.Equal(t, 1, api.gets)
	require.Len(t, rec.states, 2)

	assert.True(t, rec.states[0].IsBusy)
	assert.Empty(t, rec.states[0].ErrorMessage)

	assert.False(t, rec.states[1].IsBusy)
	assert.Empty(t, rec.states[1].ErrorMessage)
	assert.Equal(t, "Ada", rec.states[1].FirstName)
}

func TestGetProfile_StaleFailure(t *testing.T) {
	api := &fakeAPI{getErr: errors.New("network unreachable")}
	s, rec := newTestStore(api)

	outcome := s.GetProfile(context.Background(), fixedNow.Add(-10*time.Minute))

	assert.Equal(t, OutcomeFailed, outcome)
	require.Len(t, rec.states, 3)

	assert.True(t, rec.states[0].IsBusy)

	assert.False(t, rec.states[1].IsBusy)
	assert.Empty(t, rec.states[1].ErrorMessage)

	assert.False(t, rec.states[2].IsBusy)
	assert.Equal(t, "network unreachable", rec.states[2].ErrorMessage)

	// resume fields never change on failure
	assert.Equal(t, DefaultState().Resume, s.State().Resume)
}

func TestGetProfile_BusyObservedDuringFetch(t *testing.T) {
	api := &fakeAPI{patch: types.ResumePatch{}}
	s, _ := newTestStore(api)

	var busyDuringFetch bool
	api.duringGet = func() { busyDuringFetch = s.State().IsBusy }

	s.GetProfile(context.Background(), time.Time{})

	assert.True(t, busyDuringFetch)
	assert.False(t, s.State().IsBusy)
}

func TestGetProfileMillis_AdaScenario(t *testing.T) {
	incoming := types.EmptyResume()
	incoming.FirstName = "Ada"
	api := &fakeAPI{patch: types.ResumePatch{FirstName: &incoming.FirstName}}
	s, _ := newTestStore(api)

	outcome := s.GetProfileMillis(context.Background(), fixedNow.UnixMilli()-600000)
	require.Equal(t, OutcomeDone, outcome)

	st := s.State()
	assert.False(t, st.IsBusy)
	assert.Empty(t, st.ErrorMessage)
	assert.Equal(t, "Ada", st.FirstName)

	want := DefaultState()
	want.FirstName = "Ada"
	assert.Equal(t, want, st)
}

func TestGetProfile_ErrorClearedByNextSuccess(t *testing.T) {
	api := &fakeAPI{getErr: errors.New("first attempt failed")}
	s, _ := newTestStore(api)

	require.Equal(t, OutcomeFailed, s.GetProfile(context.Background(), time.Time{}))
	require.Equal(t, "first attempt failed", s.State().ErrorMessage)

	api.getErr = nil
	api.patch = types.ResumePatch{Location: strPtr("Dhaka")}
	require.Equal(t, OutcomeDone, s.GetProfile(context.Background(), time.Time{}))

	st := s.State()
	assert.Empty(t, st.ErrorMessage)
	assert.Equal(t, "Dhaka", st.Location)
}

func TestGetProfile_CustomStaleWindow(t *testing.T) {
	api := &fakeAPI{}
	s := NewStore(api,
		WithClock(func() time.Time { return fixedNow }),
		WithStaleAfter(time.Minute),
	)

	assert.Equal(t, OutcomeSkipped, s.GetProfile(context.Background(), fixedNow.Add(-59*time.Second)))
	assert.Equal(t, OutcomeDone, s.GetProfile(context.Background(), fixedNow.Add(-61*time.Second)))
}

func TestUpdateProfile_Success(t *testing.T) {
	api := &fakeAPI{}
	s, rec := newTestStore(api)

	resume := types.EmptyResume()
	resume.FirstName = "Linus"
	resume.Skills = []string{"C", "Git"}

	outcome := s.UpdateProfile(context.Background(), resume)

	assert.Equal(t, OutcomeDone, outcome)
	require.Len(t, api.saved, 1)
	assert.Equal(t, resume, api.saved[0])

	require.Len(t, rec.states, 2)
	assert.True(t, rec.states[0].IsBusy)
	assert.Equal(t, resume, rec.states[1].Resume)
	assert.False(t, rec.states[1].IsBusy)
}

func TestUpdateProfile_Failure(t *testing.T) {
	api := &fakeAPI{putErr: errors.New("save rejected")}
	s, rec := newTestStore(api)

	resume := types.EmptyResume()
	resume.FirstName = "Linus"

	outcome := s.UpdateProfile(context.Background(), resume)

	assert.Equal(t, OutcomeFailed, outcome)
	require.Len(t, rec.states, 3)
	st := s.State()
	assert.Equal(t, "save rejected", st.ErrorMessage)
	assert.False(t, st.IsBusy)
	assert.Empty(t, st.FirstName)
}

func TestOutcome_String(t *testing.T) {
	assert.Equal(t, "skipped", OutcomeSkipped.String())
	assert.Equal(t, "done", OutcomeDone.String())
	assert.Equal(t, "failed", OutcomeFailed.String())
	assert.Equal(t, "unknown", Outcome(99).String())
}
