package service

import (
	"ThreadFarm/internal/api/dto"
	"ThreadFarm/internal/model"
	"ThreadFarm/internal/pkg/publisher"
	"context"
	"fmt"
	"time"

	"github.com/goccy/go-json"
	"gorm.io/gorm"
)

// 内存版仓储，仅供单元测试使用

type memThreadRepo struct {
	nextID  uint64
	threads map[uint64]*model.Thread
}

func newMemThreadRepo() *memThreadRepo {
	return &memThreadRepo{nextID: 1, threads: map[uint64]*model.Thread{}}
}

func (s *memThreadRepo) CreateThread(_ context.Context, thread *model.Thread) error {
	thread.ID = s.nextID
	s.nextID++
	clone := *thread
	s.threads[thread.ID] = &clone
	return nil
}

func (s *memThreadRepo) GetThread(_ context.Context, userID uint64, id uint64) (*model.Thread, error) {
	thread, ok := s.threads[id]
	if !ok || thread.UserID != userID {
		return nil, gorm.ErrRecordNotFound
	}
	clone := *thread
	return &clone, nil
}

func (s *memThreadRepo) GetThreadsByUser(_ context.Context, userID uint64) ([]*model.Thread, error) {
	var out []*model.Thread
	for _, thread := range s.threads {
		if thread.UserID == userID {
			clone := *thread
			out = append(out, &clone)
		}
	}
	return out, nil
}

func (s *memThreadRepo) UpdateThread(_ context.Context, userID uint64, id uint64, updates map[string]interface{}) error {
	thread, ok := s.threads[id]
	if !ok || thread.UserID != userID {
		return gorm.ErrRecordNotFound
	}
	for key, value := range updates {
		switch key {
		case "title":
			thread.Title = value.(string)
		case "transcript":
			thread.Transcript = value.(string)
		case "tone":
			thread.Tone = value.(string)
		case "status":
			thread.Status = value.(string)
		case "file_url":
			v := value.(string)
			thread.FileURL = &v
		}
	}
	return nil
}

func (s *memThreadRepo) DeleteThread(_ context.Context, userID uint64, id uint64) error {
	thread, ok := s.threads[id]
	if !ok || thread.UserID != userID {
		return gorm.ErrRecordNotFound
	}
	delete(s.threads, id)
	return nil
}

type memPostRepo struct {
	nextID uint64
	posts  map[uint64]*model.Post
}

func newMemPostRepo() *memPostRepo {
	return &memPostRepo{nextID: 1, posts: map[uint64]*model.Post{}}
}

func (s *memPostRepo) CreatePosts(_ context.Context, posts []*model.Post) error {
	for _, post := range posts {
		post.ID = s.nextID
		s.nextID++
		clone := *post
		s.posts[post.ID] = &clone
	}
	return nil
}

func (s *memPostRepo) GetPost(_ context.Context, userID uint64, id uint64) (*model.Post, error) {
	post, ok := s.posts[id]
	if !ok || post.UserID != userID {
		return nil, gorm.ErrRecordNotFound
	}
	clone := *post
	return &clone, nil
}

func (s *memPostRepo) GetPostsByThread(_ context.Context, userID uint64, threadID uint64) ([]*model.Post, error) {
	out := make([]*model.Post, 0)
	for _, post := range s.posts {
		if post.ThreadID == threadID && post.UserID == userID {
			clone := *post
			out = append(out, &clone)
		}
	}
	// 按 PostOrder 升序
	for i := 0; i < len(out); i++ {
		for j := i + 1; j < len(out); j++ {
			if out[j].PostOrder < out[i].PostOrder {
				out[i], out[j] = out[j], out[i]
			}
		}
	}
	return out, nil
}

func (s *memPostRepo) UpdatePost(_ context.Context, userID uint64, id uint64, updates map[string]interface{}) error {
	post, ok := s.posts[id]
	if !ok || post.UserID != userID {
		return gorm.ErrRecordNotFound
	}
	for key, value := range updates {
		switch key {
		case "content":
			post.Content = value.(string)
		case "image_url":
			v := value.(string)
			post.ImageURL = &v
		}
	}
	return nil
}

func (s *memPostRepo) ReorderPosts(_ context.Context, userID uint64, threadID uint64, orders map[uint64]int) error {
	for id, order := range orders {
		post, ok := s.posts[id]
		if !ok || post.UserID != userID || post.ThreadID != threadID {
			return gorm.ErrRecordNotFound
		}
		post.PostOrder = order
	}
	return nil
}

func (s *memPostRepo) DeletePost(_ context.Context, userID uint64, id uint64) error {
	post, ok := s.posts[id]
	if !ok || post.UserID != userID {
		return gorm.ErrRecordNotFound
	}
	delete(s.posts, id)
	return nil
}

func (s *memPostRepo) ReplaceThreadPosts(_ context.Context, threadID uint64, posts []*model.Post) error {
	for id, post := range s.posts {
		if post.ThreadID == threadID {
			delete(s.posts, id)
		}
	}
	return s.CreatePosts(context.Background(), posts)
}

type memDraftRepo struct {
	nextID uint64
	drafts map[uint64]*model.Draft
}

func newMemDraftRepo() *memDraftRepo {
	return &memDraftRepo{nextID: 1, drafts: map[uint64]*model.Draft{}}
}

func (s *memDraftRepo) CreateDraft(_ context.Context, draft *model.Draft) error {
	draft.ID = s.nextID
	s.nextID++
	clone := *draft
	s.drafts[draft.ID] = &clone
	return nil
}

func (s *memDraftRepo) GetDraft(_ context.Context, userID uint64, id uint64) (*model.Draft, error) {
	draft, ok := s.drafts[id]
	if !ok || draft.UserID != userID {
		return nil, gorm.ErrRecordNotFound
	}
	clone := *draft
	return &clone, nil
}

func (s *memDraftRepo) GetDraftsByUser(_ context.Context, userID uint64) ([]*model.Draft, error) {
	var out []*model.Draft
	for _, draft := range s.drafts {
		if draft.UserID == userID {
			clone := *draft
			out = append(out, &clone)
		}
	}
	return out, nil
}

func (s *memDraftRepo) UpdateDraft(_ context.Context, userID uint64, id uint64, updates map[string]interface{}) error {
	draft, ok := s.drafts[id]
	if !ok || draft.UserID != userID {
		return gorm.ErrRecordNotFound
	}
	for key, value := range updates {
		switch key {
		case "title":
			draft.Title = value.(string)
		case "content":
			v := value.(string)
			draft.Content = &v
		case "step":
			draft.Step = value.(int)
		case "settings":
			draft.Settings = value.([]byte)
		case "posts":
			draft.Posts = value.([]byte)
		}
	}
	return nil
}

func (s *memDraftRepo) DeleteDraft(_ context.Context, userID uint64, id uint64) error {
	draft, ok := s.drafts[id]
	if !ok || draft.UserID != userID {
		return gorm.ErrRecordNotFound
	}
	delete(s.drafts, id)
	return nil
}

// memWizardStore 内存版会话存储，深拷贝避免测试间共享指针
type memWizardStore struct {
	states map[uint64][]byte
}

func newMemWizardStore() *memWizardStore {
	return &memWizardStore{states: map[uint64][]byte{}}
}

func (s *memWizardStore) Load(_ context.Context, userID uint64) (*dto.WizardState, error) {
	raw, ok := s.states[userID]
	if !ok {
		return nil, nil
	}
	state := &dto.WizardState{}
	if err := json.Unmarshal(raw, state); err != nil {
		return nil, err
	}
	return state, nil
}

func (s *memWizardStore) Save(_ context.Context, userID uint64, state *dto.WizardState) error {
	raw, err := json.Marshal(state)
	if err != nil {
		return err
	}
	s.states[userID] = raw
	return nil
}

func (s *memWizardStore) Delete(_ context.Context, userID uint64) error {
	delete(s.states, userID)
	return nil
}

// fakeGenerateService 返回预设帖子
type fakeGenerateService struct {
	posts []string
	err   error
	calls int
}

func (s *fakeGenerateService) GenerateThread(_ context.Context, _ *dto.GenerateThreadDTO) ([]string, error) {
	s.calls++
	return s.posts, s.err
}

type fakeTranscribeService struct {
	text  string
	title string
	err   error
}

func (s *fakeTranscribeService) TranscribeFile(_ context.Context, _ string) (string, error) {
	return s.text, s.err
}

func (s *fakeTranscribeService) TranscribeURL(_ context.Context, _ string) (string, string, error) {
	return s.title, s.text, s.err
}

type fakeImageService struct {
	url string
	err error
}

func (s *fakeImageService) GenerateImage(_ context.Context, _ uint64, _ string) (string, error) {
	return s.url, s.err
}

// memWizardLock 内存版发布锁，记录加解锁次数
type memWizardLock struct {
	held     map[uint64]bool
	acquires int
	releases int
}

func newMemWizardLock() *memWizardLock {
	return &memWizardLock{held: map[uint64]bool{}}
}

func (s *memWizardLock) Acquire(_ context.Context, userID uint64, _ time.Duration) (bool, error) {
	if s.held[userID] {
		return false, nil
	}
	s.held[userID] = true
	s.acquires++
	return true, nil
}

func (s *memWizardLock) Release(_ context.Context, userID uint64) error {
	delete(s.held, userID)
	s.releases++
	return nil
}

// fakePublisherClient 记录收到的帖子并按序返回平台 ID
type fakePublisherClient struct {
	name  string
	err   error
	calls int
	got   [][]publisher.PlatformPost
}

func (s *fakePublisherClient) Name() string {
	return s.name
}

func (s *fakePublisherClient) PublishThread(_ context.Context, posts []publisher.PlatformPost) ([]string, error) {
	s.calls++
	s.got = append(s.got, posts)
	if s.err != nil {
		return nil, s.err
	}
	ids := make([]string, len(posts))
	for i := range posts {
		ids[i] = fmt.Sprintf("%s-%d", s.name, i+1)
	}
	return ids, nil
}
