package service

import (
	"ThreadFarm/internal/api/dto"
	"ThreadFarm/internal/pkg/consts"
	"ThreadFarm/internal/pkg/util"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestThreadService_CreateDefaultsToDraft(t *testing.T) {
	svc := NewThreadService(newMemThreadRepo())

	thread, err := svc.CreateThread(context.Background(), 1, &dto.ThreadCreateDTO{
		Title:      "my thread",
		Transcript: "transcript body",
		Tone:       consts.ToneCasual,
	})
	require.NoError(t, err)
	assert.Equal(t, consts.ThreadStatusDraft, thread.Status)
	assert.Equal(t, uint64(1), thread.UserID)

	got, err := svc.GetThread(context.Background(), 1, thread.ID)
	require.NoError(t, err)
	assert.Equal(t, thread.Title, got.Title)
	assert.Equal(t, thread.Transcript, got.Transcript)
}

func TestThreadService_CreateRejectsUnknownTone(t *testing.T) {
	svc := NewThreadService(newMemThreadRepo())

	_, err := svc.CreateThread(context.Background(), 1, &dto.ThreadCreateDTO{
		Title:      "t",
		Transcript: "x",
		Tone:       "dramatic",
	})
	assert.ErrorIs(t, err, ErrToneInvalid)
}

func TestThreadService_OwnershipEnforced(t *testing.T) {
	svc := NewThreadService(newMemThreadRepo())

	thread, err := svc.CreateThread(context.Background(), 1, &dto.ThreadCreateDTO{
		Title: "t", Transcript: "x", Tone: consts.ToneCasual,
	})
	require.NoError(t, err)

	// 其他用户既读不到也删不掉
	_, err = svc.GetThread(context.Background(), 2, thread.ID)
	assert.ErrorIs(t, err, ErrThreadNotFound)

	err = svc.DeleteThread(context.Background(), 2, thread.ID)
	assert.ErrorIs(t, err, ErrThreadNotFound)

	_, err = svc.UpdateThread(context.Background(), 2, &dto.ThreadUpdateDTO{
		ID:      thread.ID,
		Updates: dto.ThreadPatchDTO{Title: util.PtrString("hijacked")},
	})
	assert.ErrorIs(t, err, ErrThreadNotFound)
}

func TestThreadService_PartialUpdate(t *testing.T) {
	svc := NewThreadService(newMemThreadRepo())

	thread, err := svc.CreateThread(context.Background(), 1, &dto.ThreadCreateDTO{
		Title: "original", Transcript: "body", Tone: consts.ToneCasual,
	})
	require.NoError(t, err)

	updated, err := svc.UpdateThread(context.Background(), 1, &dto.ThreadUpdateDTO{
		ID:      thread.ID,
		Updates: dto.ThreadPatchDTO{Title: util.PtrString("renamed")},
	})
	require.NoError(t, err)
	assert.Equal(t, "renamed", updated.Title)
	// 未触碰的字段保持原值
	assert.Equal(t, "body", updated.Transcript)
	assert.Equal(t, consts.ToneCasual, updated.Tone)
}

func TestThreadService_EmptyPatchRejected(t *testing.T) {
	svc := NewThreadService(newMemThreadRepo())

	thread, err := svc.CreateThread(context.Background(), 1, &dto.ThreadCreateDTO{
		Title: "t", Transcript: "x", Tone: consts.ToneCasual,
	})
	require.NoError(t, err)

	_, err = svc.UpdateThread(context.Background(), 1, &dto.ThreadUpdateDTO{ID: thread.ID})
	assert.ErrorIs(t, err, ErrParamInvalid)
}

func TestThreadService_PublishedCannotRevertToDraft(t *testing.T) {
	svc := NewThreadService(newMemThreadRepo())

	thread, err := svc.CreateThread(context.Background(), 1, &dto.ThreadCreateDTO{
		Title: "t", Transcript: "x", Tone: consts.ToneCasual,
	})
	require.NoError(t, err)

	updated, err := svc.UpdateThread(context.Background(), 1, &dto.ThreadUpdateDTO{
		ID:      thread.ID,
		Updates: dto.ThreadPatchDTO{Status: util.PtrString(consts.ThreadStatusPublished)},
	})
	require.NoError(t, err)
	assert.Equal(t, consts.ThreadStatusPublished, updated.Status)

	_, err = svc.UpdateThread(context.Background(), 1, &dto.ThreadUpdateDTO{
		ID:      thread.ID,
		Updates: dto.ThreadPatchDTO{Status: util.PtrString(consts.ThreadStatusDraft)},
	})
	assert.ErrorIs(t, err, ErrStatusTransition)

	_, err = svc.UpdateThread(context.Background(), 1, &dto.ThreadUpdateDTO{
		ID:      thread.ID,
		Updates: dto.ThreadPatchDTO{Status: util.PtrString("archived")},
	})
	assert.ErrorIs(t, err, ErrStatusTransition)
}
