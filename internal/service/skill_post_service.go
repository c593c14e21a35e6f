package service

import (
	"SkillNest/internal/api/dto"
	"SkillNest/internal/model"
	"SkillNest/internal/pkg/consts"
	"SkillNest/internal/pkg/util"
	"context"
	"log/slog"
	"sort"
	"time"

	"github.com/jinzhu/copier"
	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/mongo"

	"SkillNest/internal/repository"
)

// versionedSaveRetries 乐观锁冲突时的重试上限
const versionedSaveRetries = 3

type SkillPostService interface {
	CreatePost(ctx context.Context, ownerID, ownerName string, req *dto.SkillPostCreateDTO) (*dto.SkillPostDTO, error)
	GetPost(ctx context.Context, postID, viewerID string) (*dto.SkillPostDTO, error)
	UpdatePost(ctx context.Context, postID, requesterID string, req *dto.SkillPostCreateDTO) (*dto.SkillPostDTO, error)
	DeletePost(ctx context.Context, postID, requesterID string) error
	// DeletePosts 批量删除，任何一个ID不存在或无权限则整体失败，不做部分删除
	DeletePosts(ctx context.Context, postIDs []string, requesterID string) error
	GetPosts(ctx context.Context, viewerID string, pg util.Pageable) (*dto.PageDTO[*dto.SkillPostDTO], error)
	GetPostsByOwner(ctx context.Context, ownerID, viewerID string, pg util.Pageable) (*dto.PageDTO[*dto.SkillPostDTO], error)
	GetPostsByTag(ctx context.Context, tag, viewerID string, pg util.Pageable) (*dto.PageDTO[*dto.SkillPostDTO], error)
	GetPostsByTags(ctx context.Context, tags []string, viewerID string, pg util.Pageable) (*dto.PageDTO[*dto.SkillPostDTO], error)
	SearchPosts(ctx context.Context, keyword, viewerID string, pg util.Pageable) (*dto.PageDTO[*dto.SkillPostDTO], error)
	GetTrendingPosts(ctx context.Context, viewerID string, pg util.Pageable) (*dto.PageDTO[*dto.SkillPostDTO], error)
	GetAllTags(ctx context.Context) ([]string, error)
}

type skillPostServiceImpl struct {
	postRepo repository.SkillPostRepo
}

func NewSkillPostService(postRepo repository.SkillPostRepo) SkillPostService {
	return &skillPostServiceImpl{
		postRepo: postRepo,
	}
}

func (s *skillPostServiceImpl) CreatePost(ctx context.Context, ownerID, ownerName string, req *dto.SkillPostCreateDTO) (*dto.SkillPostDTO, error) {
	now := time.Now()
	post := &model.SkillPost{
		OwnerID:     ownerID,
		OwnerName:   ownerName,
		Title:       req.Title,
		Description: req.Description,
		Content:     req.Content,
		YoutubeURL:  req.YoutubeURL,
		Tags:        req.Tags,
		LikedBy:     []string{},
		Comments:    []model.Comment{},
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if post.Tags == nil {
		post.Tags = []string{}
	}

	if err := s.postRepo.Insert(ctx, post); err != nil {
		return nil, err
	}
	return toSkillPostDTO(post, ownerID), nil
}

func (s *skillPostServiceImpl) GetPost(ctx context.Context, postID, viewerID string) (*dto.SkillPostDTO, error) {
	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrPostNotFound
		}
		return nil, err
	}
	return toSkillPostDTO(post, viewerID), nil
}

func (s *skillPostServiceImpl) UpdatePost(ctx context.Context, postID, requesterID string, req *dto.SkillPostCreateDTO) (*dto.SkillPostDTO, error) {
	post, err := savePostVersioned(ctx, s.postRepo, postID, func(post *model.SkillPost) error {
		if post.OwnerID != requesterID {
			return UnauthorizedError
		}
		post.Title = req.Title
		post.Description = req.Description
		post.Content = req.Content
		post.YoutubeURL = req.YoutubeURL
		post.Tags = req.Tags
		if post.Tags == nil {
			post.Tags = []string{}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toSkillPostDTO(post, requesterID), nil
}

func (s *skillPostServiceImpl) DeletePost(ctx context.Context, postID, requesterID string) error {
	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return ErrPostNotFound
		}
		return err
	}
	if post.OwnerID != requesterID {
		return UnauthorizedError
	}
	return s.postRepo.Delete(ctx, postID)
}

func (s *skillPostServiceImpl) DeletePosts(ctx context.Context, postIDs []string, requesterID string) error {
	posts, err := s.postRepo.GetByIDs(ctx, postIDs)
	if err != nil {
		return err
	}

	found := make(map[string]*model.SkillPost, len(posts))
	for _, post := range posts {
		found[post.ID.Hex()] = post
	}

	// 预检先收齐全部问题ID再整体拒绝
	var missing, forbidden []string
	for _, id := range postIDs {
		post, ok := found[id]
		if !ok {
			missing = append(missing, id)
			continue
		}
		if post.OwnerID != requesterID {
			forbidden = append(forbidden, id)
		}
	}
	if len(missing) > 0 {
		return &BatchError{Message: "部分帖子不存在", FailedIDs: missing}
	}
	if len(forbidden) > 0 {
		return &BatchError{Message: "无权删除部分帖子", FailedIDs: forbidden}
	}

	return s.postRepo.DeleteByIDsAndOwner(ctx, postIDs, requesterID)
}

func (s *skillPostServiceImpl) GetPosts(ctx context.Context, viewerID string, pg util.Pageable) (*dto.PageDTO[*dto.SkillPostDTO], error) {
	pg = pg.Normalize()
	posts, total, err := s.postRepo.FindPage(ctx, pg)
	return toSkillPostPage(posts, total, viewerID, pg, err)
}

func (s *skillPostServiceImpl) GetPostsByOwner(ctx context.Context, ownerID, viewerID string, pg util.Pageable) (*dto.PageDTO[*dto.SkillPostDTO], error) {
	pg = pg.Normalize()
	posts, total, err := s.postRepo.FindByOwner(ctx, ownerID, pg)
	return toSkillPostPage(posts, total, viewerID, pg, err)
}

func (s *skillPostServiceImpl) GetPostsByTag(ctx context.Context, tag, viewerID string, pg util.Pageable) (*dto.PageDTO[*dto.SkillPostDTO], error) {
	pg = pg.Normalize()
	posts, total, err := s.postRepo.FindByTag(ctx, tag, pg)
	return toSkillPostPage(posts, total, viewerID, pg, err)
}

func (s *skillPostServiceImpl) GetPostsByTags(ctx context.Context, tags []string, viewerID string, pg util.Pageable) (*dto.PageDTO[*dto.SkillPostDTO], error) {
	pg = pg.Normalize()
	posts, total, err := s.postRepo.FindByTags(ctx, tags, pg)
	return toSkillPostPage(posts, total, viewerID, pg, err)
}

func (s *skillPostServiceImpl) SearchPosts(ctx context.Context, keyword, viewerID string, pg util.Pageable) (*dto.PageDTO[*dto.SkillPostDTO], error) {
	pg = pg.Normalize()
	posts, total, err := s.postRepo.SearchKeyword(ctx, keyword, pg)
	return toSkillPostPage(posts, total, viewerID, pg, err)
}

// GetTrendingPosts 全量拉取后内存打分排序，数据规模见设计文档
func (s *skillPostServiceImpl) GetTrendingPosts(ctx context.Context, viewerID string, pg util.Pageable) (*dto.PageDTO[*dto.SkillPostDTO], error) {
	pg = pg.Normalize()
	posts, err := s.postRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	ranked := rankTrending(posts, time.Now())
	total := int64(len(ranked))
	page := util.PageSlice(ranked, pg)

	return &dto.PageDTO[*dto.SkillPostDTO]{
		Items:    toSkillPostDTOs(page, viewerID),
		Total:    total,
		Page:     pg.Page,
		PageSize: pg.PageSize,
	}, nil
}

func (s *skillPostServiceImpl) GetAllTags(ctx context.Context) ([]string, error) {
	posts, err := s.postRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]struct{})
	tags := make([]string, 0)
	for _, post := range posts {
		for _, tag := range post.Tags {
			if _, ok := seen[tag]; ok {
				continue
			}
			seen[tag] = struct{}{}
			tags = append(tags, tag)
		}
	}
	sort.Strings(tags)
	return tags, nil
}

// trendingScore 热度 = 点赞数 + 2*顶层评论数 + 10*新鲜度，新鲜度随天数线性衰减且不低于下限
func trendingScore(post *model.SkillPost, now time.Time) float64 {
	wholeDays := int(now.Sub(post.CreatedAt).Hours() / 24)
	recency := 1.0 - float64(wholeDays)/float64(consts.TrendingDecayDays)
	if recency < consts.TrendingRecencyFloor {
		recency = consts.TrendingRecencyFloor
	}
	return float64(post.Likes) +
		float64(consts.TrendingCommentWeight*len(post.Comments)) +
		consts.TrendingRecencyWeight*recency
}

// rankTrending 按热度降序排序，同分保持输入顺序
func rankTrending(posts []*model.SkillPost, now time.Time) []*model.SkillPost {
	scores := make(map[*model.SkillPost]float64, len(posts))
	for _, post := range posts {
		scores[post] = trendingScore(post, now)
	}
	ranked := make([]*model.SkillPost, len(posts))
	copy(ranked, posts)
	sort.SliceStable(ranked, func(i, j int) bool {
		return scores[ranked[i]] > scores[ranked[j]]
	})
	return ranked
}

// savePostVersioned 读取-修改-乐观锁写回，版本冲突时重读重试
func savePostVersioned(ctx context.Context, postRepo repository.SkillPostRepo, postID string, mutate func(post *model.SkillPost) error) (*model.SkillPost, error) {
	for i := 0; i < versionedSaveRetries; i++ {
		post, err := postRepo.GetByID(ctx, postID)
		if err != nil {
			if errors.Is(err, mongo.ErrNoDocuments) {
				return nil, ErrPostNotFound
			}
			return nil, err
		}
		if err = mutate(post); err != nil {
			return nil, err
		}

		matched, err := postRepo.ReplaceVersioned(ctx, post)
		if err != nil {
			return nil, err
		}
		if matched {
			return post, nil
		}
		slog.WarnContext(ctx, "skill post version conflict, retrying", "post_id", postID, "attempt", i+1)
	}
	return nil, UnExpectedError
}

func toSkillPostPage(posts []*model.SkillPost, total int64, viewerID string, pg util.Pageable, err error) (*dto.PageDTO[*dto.SkillPostDTO], error) {
	if err != nil {
		return nil, err
	}
	return &dto.PageDTO[*dto.SkillPostDTO]{
		Items:    toSkillPostDTOs(posts, viewerID),
		Total:    total,
		Page:     pg.Page,
		PageSize: pg.PageSize,
	}, nil
}

func toSkillPostDTO(post *model.SkillPost, viewerID string) *dto.SkillPostDTO {
	result := &dto.SkillPostDTO{}
	_ = copier.Copy(result, post)
	result.ID = post.ID.Hex()
	if result.Tags == nil {
		result.Tags = []string{}
	}
	if result.Comments == nil {
		result.Comments = []dto.CommentDTO{}
	}
	for _, userID := range post.LikedBy {
		if viewerID != "" && userID == viewerID {
			result.LikedByMe = true
			break
		}
	}
	return result
}

func toSkillPostDTOs(posts []*model.SkillPost, viewerID string) []*dto.SkillPostDTO {
	result := make([]*dto.SkillPostDTO, 0, len(posts))
	for _, post := range posts {
		result = append(result, toSkillPostDTO(post, viewerID))
	}
	return result
}
