package service

import (
	"ThreadFarm/internal/api/dto"
	"ThreadFarm/internal/pkg/consts"
	"ThreadFarm/internal/pkg/publisher"
	"ThreadFarm/internal/pkg/util"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type wizardFixture struct {
	svc           WizardService
	store         *memWizardStore
	lock          *memWizardLock
	draftRepo     *memDraftRepo
	threadRepo    *memThreadRepo
	postRepo      *memPostRepo
	generate      *fakeGenerateService
	xClient       *fakePublisherClient
	threadsClient *fakePublisherClient
}

func newWizardFixture(t *testing.T) *wizardFixture {
	t.Helper()
	store := newMemWizardStore()
	lock := newMemWizardLock()
	draftRepo := newMemDraftRepo()
	threadRepo := newMemThreadRepo()
	postRepo := newMemPostRepo()
	generate := &fakeGenerateService{posts: []string{"one", "two", "three"}}
	xClient := &fakePublisherClient{name: consts.PlatformX}
	threadsClient := &fakePublisherClient{name: consts.PlatformThreads}
	svc := NewWizardService(
		store,
		lock,
		generate,
		&fakeTranscribeService{text: "transcribed text", title: "Some Video"},
		&fakeImageService{url: "http://minio/threadfarm/images/1/pic.png"},
		draftRepo,
		threadRepo,
		postRepo,
		map[string]publisher.Client{
			consts.PlatformX:       xClient,
			consts.PlatformThreads: threadsClient,
		},
	)
	return &wizardFixture{
		svc:           svc,
		store:         store,
		lock:          lock,
		draftRepo:     draftRepo,
		threadRepo:    threadRepo,
		postRepo:      postRepo,
		generate:      generate,
		xClient:       xClient,
		threadsClient: threadsClient,
	}
}

// stepOffUpload 走完第一步，让后续用例可以存草稿或继续前进
func (f *wizardFixture) stepOffUpload(t *testing.T, userID uint64) {
	t.Helper()
	_, err := f.svc.SetSource(context.Background(), userID, &dto.WizardSourceDTO{
		FileURL: util.PtrString("media/1/file.mp4"),
	})
	require.NoError(t, err)
	_, err = f.svc.Advance(context.Background(), userID)
	require.NoError(t, err)
}

func TestWizard_StartInitializesDefaults(t *testing.T) {
	f := newWizardFixture(t)

	state, err := f.svc.Start(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, WizardStepUpload, state.Step)
	assert.Equal(t, consts.ToneCasual, state.Settings.Tone)
	assert.Empty(t, state.Posts)
	assert.False(t, state.Publishing)
}

func TestWizard_GetMissingSession(t *testing.T) {
	f := newWizardFixture(t)

	_, err := f.svc.Get(context.Background(), 1)
	assert.ErrorIs(t, err, ErrWizardNotFound)
}

func TestWizard_AdvanceBlockedWithoutSource(t *testing.T) {
	f := newWizardFixture(t)
	_, err := f.svc.Start(context.Background(), 1)
	require.NoError(t, err)

	_, err = f.svc.Advance(context.Background(), 1)
	assert.ErrorIs(t, err, ErrWizardStepBlocked)

	_, err = f.svc.SetSource(context.Background(), 1, &dto.WizardSourceDTO{
		FileURL: util.PtrString("media/1/file.mp4"),
	})
	require.NoError(t, err)

	state, err := f.svc.Advance(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, WizardStepTranscript, state.Step)
}

func TestWizard_SetSourceValidation(t *testing.T) {
	f := newWizardFixture(t)
	_, err := f.svc.Start(context.Background(), 1)
	require.NoError(t, err)

	// 文件和链接二选一，同时给或都不给都不行
	_, err = f.svc.SetSource(context.Background(), 1, &dto.WizardSourceDTO{})
	assert.ErrorIs(t, err, ErrParamInvalid)

	_, err = f.svc.SetSource(context.Background(), 1, &dto.WizardSourceDTO{
		FileURL:  util.PtrString("media/1/file.mp4"),
		VideoURL: util.PtrString("https://youtu.be/abc"),
	})
	assert.ErrorIs(t, err, ErrParamInvalid)

	_, err = f.svc.SetSource(context.Background(), 1, &dto.WizardSourceDTO{
		VideoURL: util.PtrString("https://vimeo.com/123"),
	})
	assert.ErrorIs(t, err, ErrParamInvalid)

	state, err := f.svc.SetSource(context.Background(), 1, &dto.WizardSourceDTO{
		VideoURL: util.PtrString("https://www.youtube.com/watch?v=abc"),
	})
	require.NoError(t, err)
	assert.Nil(t, state.FileURL)
	require.NotNil(t, state.VideoURL)
}

func TestWizard_TranscribeAndAdvance(t *testing.T) {
	f := newWizardFixture(t)
	_, err := f.svc.Start(context.Background(), 1)
	require.NoError(t, err)

	_, err = f.svc.SetSource(context.Background(), 1, &dto.WizardSourceDTO{
		VideoURL: util.PtrString("https://youtu.be/abc"),
	})
	require.NoError(t, err)

	state, err := f.svc.Transcribe(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, "transcribed text", state.Transcript)
	assert.Equal(t, "Some Video", state.Title)

	_, err = f.svc.Advance(context.Background(), 1)
	require.NoError(t, err)

	// 第二步门禁：空白转写不能前进
	_, err = f.svc.SetTranscript(context.Background(), 1, &dto.WizardTranscriptDTO{Transcript: "  "})
	assert.ErrorIs(t, err, ErrTranscriptEmpty)

	state, err = f.svc.Advance(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, WizardStepSettings, state.Step)
}

func TestWizard_SettingsValidationAndResize(t *testing.T) {
	f := newWizardFixture(t)
	_, err := f.svc.Start(context.Background(), 1)
	require.NoError(t, err)

	_, err = f.svc.SetSettings(context.Background(), 1, &dto.WizardSettingsDTO{
		Tone: "dramatic", PostCount: 5,
	})
	assert.ErrorIs(t, err, ErrToneInvalid)

	_, err = f.svc.SetSettings(context.Background(), 1, &dto.WizardSettingsDTO{
		Tone: consts.ToneCasual, PostCount: 26,
	})
	assert.ErrorIs(t, err, ErrParamInvalid)

	_, err = f.svc.SetSettings(context.Background(), 1, &dto.WizardSettingsDTO{
		Tone: consts.ToneCasual, PostCount: 5, CharLimit: 501,
	})
	assert.ErrorIs(t, err, ErrParamInvalid)

	state, err := f.svc.SetSettings(context.Background(), 1, &dto.WizardSettingsDTO{
		Tone: consts.ToneCasual, PostCount: 3, CharLimit: 280,
	})
	require.NoError(t, err)
	require.Len(t, state.Posts, 3)

	// 写入内容后缩容保留前两条
	for i, content := range []string{"a", "b", "c"} {
		_, err = f.svc.EditPost(context.Background(), 1, i, &dto.WizardPostEditDTO{Content: content})
		require.NoError(t, err)
	}
	state, err = f.svc.SetSettings(context.Background(), 1, &dto.WizardSettingsDTO{
		Tone: consts.ToneCasual, PostCount: 2, CharLimit: 280,
	})
	require.NoError(t, err)
	require.Len(t, state.Posts, 2)
	assert.Equal(t, "a", state.Posts[0].Content)
	assert.Equal(t, "b", state.Posts[1].Content)

	// 扩容补空帖，原内容不动
	state, err = f.svc.SetSettings(context.Background(), 1, &dto.WizardSettingsDTO{
		Tone: consts.ToneCasual, PostCount: 4, CharLimit: 280,
	})
	require.NoError(t, err)
	require.Len(t, state.Posts, 4)
	assert.Equal(t, "a", state.Posts[0].Content)
	assert.Equal(t, "b", state.Posts[1].Content)
	assert.Empty(t, state.Posts[2].Content)
	assert.Empty(t, state.Posts[3].Content)
}

func TestWizard_GenerateFillsPosts(t *testing.T) {
	f := newWizardFixture(t)
	_, err := f.svc.Start(context.Background(), 1)
	require.NoError(t, err)

	_, err = f.svc.SetTranscript(context.Background(), 1, &dto.WizardTranscriptDTO{Transcript: "long transcript"})
	require.NoError(t, err)

	state, err := f.svc.Generate(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, state.Posts, 3)
	assert.Equal(t, "one", state.Posts[0].Content)
	assert.Equal(t, 3, state.Settings.PostCount)
	assert.Equal(t, 1, f.generate.calls)
}

func TestWizard_EditPostCharLimit(t *testing.T) {
	f := newWizardFixture(t)
	_, err := f.svc.Start(context.Background(), 1)
	require.NoError(t, err)

	_, err = f.svc.SetSettings(context.Background(), 1, &dto.WizardSettingsDTO{
		Tone: consts.ToneCasual, PostCount: 1, CharLimit: 5,
	})
	require.NoError(t, err)

	_, err = f.svc.EditPost(context.Background(), 1, 0, &dto.WizardPostEditDTO{Content: "too long for limit"})
	assert.ErrorIs(t, err, ErrParamInvalid)

	state, err := f.svc.EditPost(context.Background(), 1, 0, &dto.WizardPostEditDTO{Content: "short"})
	require.NoError(t, err)
	assert.Equal(t, "short", state.Posts[0].Content)

	// 越界下标
	_, err = f.svc.EditPost(context.Background(), 1, 5, &dto.WizardPostEditDTO{Content: "x"})
	assert.ErrorIs(t, err, ErrParamInvalid)
}

func TestWizard_MovePostSwapsAdjacent(t *testing.T) {
	f := newWizardFixture(t)
	_, err := f.svc.Start(context.Background(), 1)
	require.NoError(t, err)

	_, err = f.svc.SetSettings(context.Background(), 1, &dto.WizardSettingsDTO{
		Tone: consts.ToneCasual, PostCount: 3, CharLimit: 0,
	})
	require.NoError(t, err)
	for i, content := range []string{"a", "b", "c"} {
		_, err = f.svc.EditPost(context.Background(), 1, i, &dto.WizardPostEditDTO{Content: content})
		require.NoError(t, err)
	}

	state, err := f.svc.MovePost(context.Background(), 1, 1, &dto.WizardMoveDTO{Direction: "up"})
	require.NoError(t, err)
	assert.Equal(t, "b", state.Posts[0].Content)
	assert.Equal(t, "a", state.Posts[1].Content)

	// 顶端不能再上移
	_, err = f.svc.MovePost(context.Background(), 1, 0, &dto.WizardMoveDTO{Direction: "up"})
	assert.ErrorIs(t, err, ErrParamInvalid)
	_, err = f.svc.MovePost(context.Background(), 1, 2, &dto.WizardMoveDTO{Direction: "down"})
	assert.ErrorIs(t, err, ErrParamInvalid)
}

// 上传步没有可保存的内容，不允许存草稿
func TestWizard_SaveDraftBlockedAtUploadStep(t *testing.T) {
	f := newWizardFixture(t)
	_, err := f.svc.Start(context.Background(), 1)
	require.NoError(t, err)

	_, err = f.svc.SaveDraft(context.Background(), 1)
	assert.ErrorIs(t, err, ErrWizardStepBlocked)

	drafts, err := f.draftRepo.GetDraftsByUser(context.Background(), 1)
	require.NoError(t, err)
	assert.Empty(t, drafts)
}

func TestWizard_SaveDraftDerivesTitle(t *testing.T) {
	f := newWizardFixture(t)
	_, err := f.svc.Start(context.Background(), 1)
	require.NoError(t, err)
	f.stepOffUpload(t, 1)

	_, err = f.svc.SetTranscript(context.Background(), 1, &dto.WizardTranscriptDTO{
		Transcript: "the quick brown fox jumps over the lazy dog",
	})
	require.NoError(t, err)

	draft, err := f.svc.SaveDraft(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, "the quick brown fox jumps over", draft.Title)

	// 二次保存覆盖同一份草稿
	_, err = f.svc.SetTranscript(context.Background(), 1, &dto.WizardTranscriptDTO{Transcript: "new words entirely"})
	require.NoError(t, err)
	second, err := f.svc.SaveDraft(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, draft.ID, second.ID)

	drafts, err := f.draftRepo.GetDraftsByUser(context.Background(), 1)
	require.NoError(t, err)
	assert.Len(t, drafts, 1)
}

func TestWizard_ResumeRebuildsState(t *testing.T) {
	f := newWizardFixture(t)
	_, err := f.svc.Start(context.Background(), 1)
	require.NoError(t, err)
	f.stepOffUpload(t, 1)

	_, err = f.svc.SetTranscript(context.Background(), 1, &dto.WizardTranscriptDTO{Transcript: "saved transcript"})
	require.NoError(t, err)
	_, err = f.svc.SetSettings(context.Background(), 1, &dto.WizardSettingsDTO{
		Tone: consts.ToneEducational, PostCount: 2, CharLimit: 100,
	})
	require.NoError(t, err)

	draft, err := f.svc.SaveDraft(context.Background(), 1)
	require.NoError(t, err)

	// 会话丢失后从草稿恢复
	require.NoError(t, f.svc.Discard(context.Background(), 1))
	_, err = f.svc.Get(context.Background(), 1)
	assert.ErrorIs(t, err, ErrWizardNotFound)

	state, err := f.svc.Resume(context.Background(), 1, draft.ID)
	require.NoError(t, err)
	assert.Equal(t, "saved transcript", state.Transcript)
	assert.Equal(t, consts.ToneEducational, state.Settings.Tone)
	assert.Len(t, state.Posts, 2)
	assert.Equal(t, draft.ID, state.DraftID)

	_, err = f.svc.Resume(context.Background(), 1, 999)
	assert.ErrorIs(t, err, ErrDraftNotFound)
	_, err = f.svc.Resume(context.Background(), 2, draft.ID)
	assert.ErrorIs(t, err, ErrDraftNotFound)
}

func TestWizard_BackBlockedAtStartAndWhilePublishing(t *testing.T) {
	f := newWizardFixture(t)
	_, err := f.svc.Start(context.Background(), 1)
	require.NoError(t, err)

	_, err = f.svc.Back(context.Background(), 1)
	assert.ErrorIs(t, err, ErrWizardStepBlocked)

	state, err := f.store.Load(context.Background(), 1)
	require.NoError(t, err)
	state.Step = WizardStepPublish
	state.Publishing = true
	require.NoError(t, f.store.Save(context.Background(), 1, state))

	_, err = f.svc.Back(context.Background(), 1)
	assert.ErrorIs(t, err, ErrWizardPublishing)
}

func TestWizard_PublishGuards(t *testing.T) {
	f := newWizardFixture(t)
	_, err := f.svc.Start(context.Background(), 1)
	require.NoError(t, err)

	// 一个平台都不选
	_, err = f.svc.Publish(context.Background(), 1, &dto.WizardPublishDTO{})
	assert.ErrorIs(t, err, ErrWizardNoPlatform)

	// 未走到发布步骤
	_, err = f.svc.Publish(context.Background(), 1, &dto.WizardPublishDTO{ToX: true})
	assert.ErrorIs(t, err, ErrWizardStepBlocked)

	// 已发布的会话不允许重复发布
	state, err := f.store.Load(context.Background(), 1)
	require.NoError(t, err)
	state.Step = WizardStepPublish
	state.Published = true
	require.NoError(t, f.store.Save(context.Background(), 1, state))

	_, err = f.svc.Publish(context.Background(), 1, &dto.WizardPublishDTO{ToX: true})
	assert.ErrorIs(t, err, ErrWizardStepBlocked)
}

// primeForPublish 把会话推进到发布步并铺好帖子
func (f *wizardFixture) primeForPublish(t *testing.T, userID uint64, contents ...string) {
	t.Helper()
	_, err := f.svc.Start(context.Background(), userID)
	require.NoError(t, err)

	state, err := f.store.Load(context.Background(), userID)
	require.NoError(t, err)
	state.Step = WizardStepPublish
	state.Transcript = "the full transcript of the episode"
	state.Posts = nil
	for _, content := range contents {
		state.Posts = append(state.Posts, dto.WizardPost{ID: content, Content: content})
	}
	require.NoError(t, f.store.Save(context.Background(), userID, state))
}

func TestWizard_PublishPersistsThreadThenPublishes(t *testing.T) {
	f := newWizardFixture(t)
	f.primeForPublish(t, 1, "first post", "", "second post")

	result, err := f.svc.Publish(context.Background(), 1, &dto.WizardPublishDTO{ToX: true, ToThreads: true})
	require.NoError(t, err)
	require.NotZero(t, result.ThreadID)
	assert.Equal(t, []string{"x-1", "x-2"}, result.Platforms[consts.PlatformX])
	assert.Equal(t, []string{"threads-1", "threads-2"}, result.Platforms[consts.PlatformThreads])

	// 线程落库且标记已发布
	thread, err := f.threadRepo.GetThread(context.Background(), 1, result.ThreadID)
	require.NoError(t, err)
	assert.Equal(t, consts.ThreadStatusPublished, thread.Status)
	assert.Equal(t, "the full transcript of the episode", thread.Title)

	// 空白帖被剔除，顺序号连续
	posts, err := f.postRepo.GetPostsByThread(context.Background(), 1, result.ThreadID)
	require.NoError(t, err)
	require.Len(t, posts, 2)
	assert.Equal(t, "first post", posts[0].Content)
	assert.Equal(t, 1, posts[0].PostOrder)
	assert.Equal(t, "second post", posts[1].Content)
	assert.Equal(t, 2, posts[1].PostOrder)

	// 平台收到的是剔除空白后的同一份帖子
	require.Len(t, f.xClient.got, 1)
	assert.Len(t, f.xClient.got[0], 2)

	state, err := f.store.Load(context.Background(), 1)
	require.NoError(t, err)
	assert.True(t, state.Published)
	assert.False(t, state.Publishing)
	assert.Equal(t, result.ThreadID, state.ThreadID)
	assert.Equal(t, f.lock.acquires, f.lock.releases)
}

// 平台侧失败时线程保持草稿态，会话解除发布中标记
func TestWizard_PublishPlatformFailureLeavesDraft(t *testing.T) {
	f := newWizardFixture(t)
	f.primeForPublish(t, 1, "only post")
	f.threadsClient.err = publisher.ErrRateLimited

	_, err := f.svc.Publish(context.Background(), 1, &dto.WizardPublishDTO{ToX: true, ToThreads: true})
	assert.ErrorIs(t, err, ErrPublishRateLimited)

	state, err := f.store.Load(context.Background(), 1)
	require.NoError(t, err)
	assert.False(t, state.Published)
	assert.False(t, state.Publishing)
	require.NotZero(t, state.ThreadID)

	thread, err := f.threadRepo.GetThread(context.Background(), 1, state.ThreadID)
	require.NoError(t, err)
	assert.Equal(t, consts.ThreadStatusDraft, thread.Status)
	assert.Equal(t, f.lock.acquires, f.lock.releases)
}

// 重试复用已落库的线程，不会建出第二条
func TestWizard_PublishRetryReusesThread(t *testing.T) {
	f := newWizardFixture(t)
	f.primeForPublish(t, 1, "only post")
	f.threadsClient.err = publisher.ErrUnauthorized

	_, err := f.svc.Publish(context.Background(), 1, &dto.WizardPublishDTO{ToThreads: true})
	assert.ErrorIs(t, err, ErrPublishUnauthorized)

	state, err := f.store.Load(context.Background(), 1)
	require.NoError(t, err)
	firstThreadID := state.ThreadID
	require.NotZero(t, firstThreadID)

	f.threadsClient.err = nil
	result, err := f.svc.Publish(context.Background(), 1, &dto.WizardPublishDTO{ToThreads: true})
	require.NoError(t, err)
	assert.Equal(t, firstThreadID, result.ThreadID)
	assert.Equal(t, 2, f.threadsClient.calls)

	threads, err := f.threadRepo.GetThreadsByUser(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, threads, 1)
	assert.Equal(t, consts.ThreadStatusPublished, threads[0].Status)

	posts, err := f.postRepo.GetPostsByThread(context.Background(), 1, firstThreadID)
	require.NoError(t, err)
	assert.Len(t, posts, 1)
}

// 锁被占用时直接拒绝，不碰会话和仓储
func TestWizard_PublishBlockedWhileLockHeld(t *testing.T) {
	f := newWizardFixture(t)
	f.primeForPublish(t, 1, "only post")
	f.lock.held[1] = true

	_, err := f.svc.Publish(context.Background(), 1, &dto.WizardPublishDTO{ToX: true})
	assert.ErrorIs(t, err, ErrWizardPublishing)
	assert.Zero(t, f.xClient.calls)

	threads, err := f.threadRepo.GetThreadsByUser(context.Background(), 1)
	require.NoError(t, err)
	assert.Empty(t, threads)
}
