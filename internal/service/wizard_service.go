package service

import (
	log "log/slog"

	"ThreadFarm/internal/api/dto"
	"ThreadFarm/internal/model"
	"ThreadFarm/internal/pkg/consts"
	"ThreadFarm/internal/pkg/llm"
	"ThreadFarm/internal/pkg/minio"
	"ThreadFarm/internal/pkg/publisher"
	"ThreadFarm/internal/pkg/util"
	"ThreadFarm/internal/repository"
	"context"
	"errors"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// 向导五个步骤
const (
	WizardStepUpload = iota
	WizardStepTranscript
	WizardStepSettings
	WizardStepEdit
	WizardStepPublish
)

type WizardService interface {
	Start(ctx context.Context, userID uint64) (*dto.WizardState, error)
	Get(ctx context.Context, userID uint64) (*dto.WizardState, error)
	Advance(ctx context.Context, userID uint64) (*dto.WizardState, error)
	Back(ctx context.Context, userID uint64) (*dto.WizardState, error)
	SetSource(ctx context.Context, userID uint64, sourceDTO *dto.WizardSourceDTO) (*dto.WizardState, error)
	Transcribe(ctx context.Context, userID uint64) (*dto.WizardState, error)
	SetTranscript(ctx context.Context, userID uint64, transcriptDTO *dto.WizardTranscriptDTO) (*dto.WizardState, error)
	SetSettings(ctx context.Context, userID uint64, settingsDTO *dto.WizardSettingsDTO) (*dto.WizardState, error)
	Generate(ctx context.Context, userID uint64) (*dto.WizardState, error)
	EditPost(ctx context.Context, userID uint64, index int, editDTO *dto.WizardPostEditDTO) (*dto.WizardState, error)
	MovePost(ctx context.Context, userID uint64, index int, moveDTO *dto.WizardMoveDTO) (*dto.WizardState, error)
	AttachImage(ctx context.Context, userID uint64, index int, imageDTO *dto.WizardImageDTO) (*dto.WizardState, error)
	SaveDraft(ctx context.Context, userID uint64) (*model.Draft, error)
	Resume(ctx context.Context, userID uint64, draftID uint64) (*dto.WizardState, error)
	Publish(ctx context.Context, userID uint64, publishDTO *dto.WizardPublishDTO) (*dto.WizardPublishResultDTO, error)
	Discard(ctx context.Context, userID uint64) error
}

type WizardServiceImpl struct {
	store             WizardStore
	lock              WizardLock
	generateService   GenerateService
	transcribeService TranscribeService
	imageService      ImageService
	draftRepo         repository.DraftRepo
	threadRepo        repository.ThreadRepo
	postRepo          repository.PostRepo
	publishers        map[string]publisher.Client
}

func NewWizardService(
	store WizardStore,
	lock WizardLock,
	generateService GenerateService,
	transcribeService TranscribeService,
	imageService ImageService,
	draftRepo repository.DraftRepo,
	threadRepo repository.ThreadRepo,
	postRepo repository.PostRepo,
	publishers map[string]publisher.Client,
) WizardService {
	return &WizardServiceImpl{
		store:             store,
		lock:              lock,
		generateService:   generateService,
		transcribeService: transcribeService,
		imageService:      imageService,
		draftRepo:         draftRepo,
		threadRepo:        threadRepo,
		postRepo:          postRepo,
		publishers:        publishers,
	}
}

func (s *WizardServiceImpl) Start(ctx context.Context, userID uint64) (*dto.WizardState, error) {
	state := &dto.WizardState{
		Step: WizardStepUpload,
		Settings: dto.WizardSettings{
			Tone:      consts.ToneCasual,
			PostCount: 5,
			CharLimit: 280,
		},
		Posts: []dto.WizardPost{},
	}
	if err := s.store.Save(ctx, userID, state); err != nil {
		return nil, err
	}
	return state, nil
}

func (s *WizardServiceImpl) Get(ctx context.Context, userID uint64) (*dto.WizardState, error) {
	return s.load(ctx, userID)
}

// load 取会话，不存在时报 ErrWizardNotFound
func (s *WizardServiceImpl) load(ctx context.Context, userID uint64) (*dto.WizardState, error) {
	state, err := s.store.Load(ctx, userID)
	if err != nil {
		return nil, err
	}
	if state == nil {
		return nil, ErrWizardNotFound
	}
	return state, nil
}

// loadMutable 在 load 之上排除发布中和已发布的会话
func (s *WizardServiceImpl) loadMutable(ctx context.Context, userID uint64) (*dto.WizardState, error) {
	state, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}
	if state.Publishing {
		return nil, ErrWizardPublishing
	}
	if state.Published {
		return nil, ErrWizardStepBlocked
	}
	return state, nil
}

// canLeave 判断当前步骤的前进门禁
func canLeave(state *dto.WizardState) bool {
	switch state.Step {
	case WizardStepUpload:
		if state.FileURL != nil && *state.FileURL != "" {
			return true
		}
		return state.VideoURL != nil && util.IsVideoURL(*state.VideoURL)
	case WizardStepTranscript:
		return strings.TrimSpace(state.Transcript) != ""
	case WizardStepSettings:
		return llm.ValidTone(state.Settings.Tone) &&
			state.Settings.PostCount >= consts.PostCountMin && state.Settings.PostCount <= consts.PostCountMax &&
			state.Settings.CharLimit >= consts.CharLimitMin && state.Settings.CharLimit <= consts.CharLimitMax
	case WizardStepEdit:
		return true
	default:
		return false
	}
}

func (s *WizardServiceImpl) Advance(ctx context.Context, userID uint64) (*dto.WizardState, error) {
	state, err := s.loadMutable(ctx, userID)
	if err != nil {
		return nil, err
	}
	if state.Step >= WizardStepPublish || !canLeave(state) {
		return nil, ErrWizardStepBlocked
	}
	state.Step++
	if err = s.store.Save(ctx, userID, state); err != nil {
		return nil, err
	}
	return state, nil
}

func (s *WizardServiceImpl) Back(ctx context.Context, userID uint64) (*dto.WizardState, error) {
	state, err := s.loadMutable(ctx, userID)
	if err != nil {
		return nil, err
	}
	if state.Step <= WizardStepUpload {
		return nil, ErrWizardStepBlocked
	}
	state.Step--
	if err = s.store.Save(ctx, userID, state); err != nil {
		return nil, err
	}
	return state, nil
}

// SetSource 第一步：登记本地文件或视频链接，二选一
func (s *WizardServiceImpl) SetSource(ctx context.Context, userID uint64, sourceDTO *dto.WizardSourceDTO) (*dto.WizardState, error) {
	hasFile := sourceDTO.FileURL != nil && *sourceDTO.FileURL != ""
	hasVideo := sourceDTO.VideoURL != nil && *sourceDTO.VideoURL != ""
	if hasFile == hasVideo {
		return nil, ErrParamInvalid
	}
	if hasVideo && !util.IsVideoURL(*sourceDTO.VideoURL) {
		return nil, ErrParamInvalid
	}

	state, err := s.loadMutable(ctx, userID)
	if err != nil {
		return nil, err
	}
	if hasFile {
		state.FileURL = sourceDTO.FileURL
		state.VideoURL = nil
	} else {
		state.VideoURL = sourceDTO.VideoURL
		state.FileURL = nil
	}
	if err = s.store.Save(ctx, userID, state); err != nil {
		return nil, err
	}
	return state, nil
}

// Transcribe 按已登记的来源做转写，结果写入会话
func (s *WizardServiceImpl) Transcribe(ctx context.Context, userID uint64) (*dto.WizardState, error) {
	state, err := s.loadMutable(ctx, userID)
	if err != nil {
		return nil, err
	}

	switch {
	case state.FileURL != nil && *state.FileURL != "":
		text, err := s.transcribeService.TranscribeFile(ctx, *state.FileURL)
		if err != nil {
			return nil, err
		}
		state.Transcript = text
	case state.VideoURL != nil && *state.VideoURL != "":
		title, text, err := s.transcribeService.TranscribeURL(ctx, *state.VideoURL)
		if err != nil {
			return nil, err
		}
		state.Transcript = text
		if state.Title == "" {
			state.Title = title
		}
	default:
		return nil, ErrWizardStepBlocked
	}

	if state.Title == "" {
		state.Title = util.DeriveTitle(state.Transcript)
	}
	if err = s.store.Save(ctx, userID, state); err != nil {
		return nil, err
	}
	return state, nil
}

// SetTranscript 第二步：人工修订转写文本
func (s *WizardServiceImpl) SetTranscript(ctx context.Context, userID uint64, transcriptDTO *dto.WizardTranscriptDTO) (*dto.WizardState, error) {
	if strings.TrimSpace(transcriptDTO.Transcript) == "" {
		return nil, ErrTranscriptEmpty
	}
	state, err := s.loadMutable(ctx, userID)
	if err != nil {
		return nil, err
	}
	state.Transcript = transcriptDTO.Transcript
	state.Title = util.DeriveTitle(state.Transcript)
	if err = s.store.Save(ctx, userID, state); err != nil {
		return nil, err
	}
	return state, nil
}

// SetSettings 第三步：帖子数量变化时就地伸缩，已有内容保留
func (s *WizardServiceImpl) SetSettings(ctx context.Context, userID uint64, settingsDTO *dto.WizardSettingsDTO) (*dto.WizardState, error) {
	if !llm.ValidTone(settingsDTO.Tone) {
		return nil, ErrToneInvalid
	}
	if settingsDTO.PostCount < consts.PostCountMin || settingsDTO.PostCount > consts.PostCountMax ||
		settingsDTO.CharLimit < consts.CharLimitMin || settingsDTO.CharLimit > consts.CharLimitMax {
		return nil, ErrParamInvalid
	}

	state, err := s.loadMutable(ctx, userID)
	if err != nil {
		return nil, err
	}
	state.Settings = dto.WizardSettings{
		Tone:      settingsDTO.Tone,
		PostCount: settingsDTO.PostCount,
		CharLimit: settingsDTO.CharLimit,
	}
	state.Posts = resizePosts(state.Posts, settingsDTO.PostCount)
	if err = s.store.Save(ctx, userID, state); err != nil {
		return nil, err
	}
	return state, nil
}

// resizePosts 截断保留前 n 条，扩容补空帖
func resizePosts(posts []dto.WizardPost, n int) []dto.WizardPost {
	if len(posts) > n {
		return posts[:n]
	}
	for len(posts) < n {
		posts = append(posts, dto.WizardPost{ID: uuid.NewString()})
	}
	return posts
}

// Generate 按会话里的转写文本和设置生成整串帖子
func (s *WizardServiceImpl) Generate(ctx context.Context, userID uint64) (*dto.WizardState, error) {
	state, err := s.loadMutable(ctx, userID)
	if err != nil {
		return nil, err
	}

	contents, err := s.generateService.GenerateThread(ctx, &dto.GenerateThreadDTO{
		Transcript: state.Transcript,
		Tone:       state.Settings.Tone,
	})
	if err != nil {
		return nil, err
	}
	if len(contents) > consts.PostCountMax {
		contents = contents[:consts.PostCountMax]
	}

	posts := make([]dto.WizardPost, 0, len(contents))
	for _, content := range contents {
		posts = append(posts, dto.WizardPost{ID: uuid.NewString(), Content: content})
	}
	state.Posts = posts
	state.Settings.PostCount = len(posts)
	if err = s.store.Save(ctx, userID, state); err != nil {
		return nil, err
	}
	return state, nil
}

// EditPost 第四步：改写单条帖子，受字符上限约束
func (s *WizardServiceImpl) EditPost(ctx context.Context, userID uint64, index int, editDTO *dto.WizardPostEditDTO) (*dto.WizardState, error) {
	state, err := s.loadMutable(ctx, userID)
	if err != nil {
		return nil, err
	}
	if index < 0 || index >= len(state.Posts) {
		return nil, ErrParamInvalid
	}
	if state.Settings.CharLimit > 0 && utf8.RuneCountInString(editDTO.Content) > state.Settings.CharLimit {
		return nil, ErrParamInvalid
	}
	state.Posts[index].Content = editDTO.Content
	if err = s.store.Save(ctx, userID, state); err != nil {
		return nil, err
	}
	return state, nil
}

// MovePost 第四步：与相邻帖子交换位置
func (s *WizardServiceImpl) MovePost(ctx context.Context, userID uint64, index int, moveDTO *dto.WizardMoveDTO) (*dto.WizardState, error) {
	state, err := s.loadMutable(ctx, userID)
	if err != nil {
		return nil, err
	}
	target := index - 1
	if moveDTO.Direction == "down" {
		target = index + 1
	}
	if index < 0 || index >= len(state.Posts) || target < 0 || target >= len(state.Posts) {
		return nil, ErrParamInvalid
	}
	state.Posts[index], state.Posts[target] = state.Posts[target], state.Posts[index]
	if err = s.store.Save(ctx, userID, state); err != nil {
		return nil, err
	}
	return state, nil
}

// AttachImage 第四步：生成配图或挂接已上传的对象
func (s *WizardServiceImpl) AttachImage(ctx context.Context, userID uint64, index int, imageDTO *dto.WizardImageDTO) (*dto.WizardState, error) {
	state, err := s.loadMutable(ctx, userID)
	if err != nil {
		return nil, err
	}
	if index < 0 || index >= len(state.Posts) {
		return nil, ErrParamInvalid
	}

	var url string
	switch imageDTO.Mode {
	case "generate":
		prompt := imageDTO.Prompt
		if prompt == "" {
			prompt = state.Posts[index].Content
		}
		url, err = s.imageService.GenerateImage(ctx, userID, prompt)
		if err != nil {
			return nil, err
		}
	case "upload":
		if imageDTO.ObjectKey == "" {
			return nil, ErrParamInvalid
		}
		url = minio.GetPublicURL(imageDTO.ObjectKey)
	default:
		return nil, ErrParamInvalid
	}

	state.Posts[index].ImageURL = &url
	if err = s.store.Save(ctx, userID, state); err != nil {
		return nil, err
	}
	return state, nil
}

// SaveDraft 把会话快照落库。已关联草稿则覆盖，否则新建。
// 上传步尚无可保存的内容，不允许存草稿
func (s *WizardServiceImpl) SaveDraft(ctx context.Context, userID uint64) (*model.Draft, error) {
	state, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}
	if state.Step == WizardStepUpload {
		return nil, ErrWizardStepBlocked
	}

	title := state.Title
	if title == "" {
		title = util.DeriveTitle(state.Transcript)
	}
	settings, err := json.Marshal(state.Settings)
	if err != nil {
		return nil, err
	}
	posts, err := json.Marshal(state.Posts)
	if err != nil {
		return nil, err
	}

	if state.DraftID > 0 {
		updates := map[string]any{
			"title":    title,
			"content":  state.Transcript,
			"step":     state.Step,
			"settings": settings,
			"posts":    posts,
		}
		if err = s.draftRepo.UpdateDraft(ctx, userID, state.DraftID, updates); err != nil {
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, err
			}
			// 草稿被并发删除，退回新建
			state.DraftID = 0
		} else {
			draft, err := s.draftRepo.GetDraft(ctx, userID, state.DraftID)
			if err != nil {
				return nil, err
			}
			return draft, nil
		}
	}

	draft := &model.Draft{
		UserID:   userID,
		Title:    title,
		Content:  &state.Transcript,
		Step:     state.Step,
		Settings: settings,
		Posts:    posts,
	}
	if err = s.draftRepo.CreateDraft(ctx, draft); err != nil {
		return nil, err
	}
	state.DraftID = draft.ID
	if err = s.store.Save(ctx, userID, state); err != nil {
		return nil, err
	}
	return draft, nil
}

// Resume 从草稿重建向导会话，覆盖当前会话
func (s *WizardServiceImpl) Resume(ctx context.Context, userID uint64, draftID uint64) (*dto.WizardState, error) {
	draft, err := s.draftRepo.GetDraft(ctx, userID, draftID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDraftNotFound
		}
		return nil, err
	}

	state := &dto.WizardState{
		Step:    draft.Step,
		Title:   draft.Title,
		DraftID: draft.ID,
		Posts:   []dto.WizardPost{},
	}
	if draft.Content != nil {
		state.Transcript = *draft.Content
	}
	if len(draft.Settings) > 0 {
		if err = json.Unmarshal(draft.Settings, &state.Settings); err != nil {
			return nil, err
		}
	}
	if len(draft.Posts) > 0 {
		if err = json.Unmarshal(draft.Posts, &state.Posts); err != nil {
			return nil, err
		}
	}
	if err = s.store.Save(ctx, userID, state); err != nil {
		return nil, err
	}
	return state, nil
}

// Publish 第五步：落库线程与帖子，逐平台发布，全部成功后标记已发布。
// 同一用户同一时刻只允许一个发布在途。
func (s *WizardServiceImpl) Publish(ctx context.Context, userID uint64, publishDTO *dto.WizardPublishDTO) (*dto.WizardPublishResultDTO, error) {
	if !publishDTO.ToX && !publishDTO.ToThreads {
		return nil, ErrWizardNoPlatform
	}

	state, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}
	if state.Published {
		return nil, ErrWizardStepBlocked
	}
	if state.Step != WizardStepPublish {
		return nil, ErrWizardStepBlocked
	}

	locked, err := s.lock.Acquire(ctx, userID, 2*time.Minute)
	if err != nil {
		return nil, err
	}
	if !locked {
		return nil, ErrWizardPublishing
	}
	defer func() {
		if unlockErr := s.lock.Release(context.WithoutCancel(ctx), userID); unlockErr != nil {
			log.ErrorContext(ctx, "发布锁释放失败", "err", unlockErr)
		}
	}()

	state.Publishing = true
	if err = s.store.Save(ctx, userID, state); err != nil {
		return nil, err
	}
	// 无论成败都要摘掉发布中标记
	defer func() {
		state.Publishing = false
		if saveErr := s.store.Save(context.WithoutCancel(ctx), userID, state); saveErr != nil {
			log.ErrorContext(ctx, "向导会话保存失败", "err", saveErr)
		}
	}()

	threadID, platformPosts, err := s.persistThread(ctx, userID, state)
	if err != nil {
		return nil, err
	}
	state.ThreadID = threadID

	targets := make([]string, 0, 2)
	if publishDTO.ToX {
		targets = append(targets, consts.PlatformX)
	}
	if publishDTO.ToThreads {
		targets = append(targets, consts.PlatformThreads)
	}

	result := &dto.WizardPublishResultDTO{
		ThreadID:  threadID,
		Platforms: make(map[string][]string, len(targets)),
	}
	for _, name := range targets {
		client, ok := s.publishers[name]
		if !ok {
			return nil, ErrWizardNoPlatform
		}
		ids, err := client.PublishThread(ctx, platformPosts)
		if err != nil {
			log.ErrorContext(ctx, "平台发布失败", "platform", name, "err", err)
			return nil, mapPublishError(err)
		}
		result.Platforms[name] = ids
	}

	if err = s.threadRepo.UpdateThread(ctx, userID, threadID, map[string]any{
		"status": consts.ThreadStatusPublished,
	}); err != nil {
		return nil, err
	}
	state.Published = true
	return result, nil
}

// persistThread 把会话中的帖子落为正式线程，重试发布时复用已建线程
func (s *WizardServiceImpl) persistThread(ctx context.Context, userID uint64, state *dto.WizardState) (uint64, []publisher.PlatformPost, error) {
	posts := make([]*model.Post, 0, len(state.Posts))
	platformPosts := make([]publisher.PlatformPost, 0, len(state.Posts))
	order := 0
	for _, p := range state.Posts {
		if strings.TrimSpace(p.Content) == "" {
			continue
		}
		order++
		posts = append(posts, &model.Post{
			UserID:    userID,
			Content:   p.Content,
			ImageURL:  p.ImageURL,
			PostOrder: order,
		})
		platformPosts = append(platformPosts, publisher.PlatformPost{Content: p.Content, ImageURL: p.ImageURL})
	}
	if len(posts) == 0 {
		return 0, nil, ErrWizardStepBlocked
	}

	threadID := state.ThreadID
	if threadID == 0 {
		title := state.Title
		if title == "" {
			title = util.DeriveTitle(state.Transcript)
		}
		thread := &model.Thread{
			UserID:     userID,
			Title:      title,
			Transcript: state.Transcript,
			Tone:       state.Settings.Tone,
			FileURL:    state.FileURL,
			Status:     consts.ThreadStatusDraft,
		}
		if err := s.threadRepo.CreateThread(ctx, thread); err != nil {
			return 0, nil, err
		}
		threadID = thread.ID
	}

	for _, p := range posts {
		p.ThreadID = threadID
	}
	if err := s.postRepo.ReplaceThreadPosts(ctx, threadID, posts); err != nil {
		return 0, nil, err
	}
	return threadID, platformPosts, nil
}

func mapPublishError(err error) error {
	switch {
	case errors.Is(err, publisher.ErrUnauthorized):
		return ErrPublishUnauthorized
	case errors.Is(err, publisher.ErrRateLimited):
		return ErrPublishRateLimited
	case errors.Is(err, publisher.ErrRejected):
		return ErrPublishRejected
	default:
		return ErrPublishFailed
	}
}

func (s *WizardServiceImpl) Discard(ctx context.Context, userID uint64) error {
	return s.store.Delete(ctx, userID)
}
