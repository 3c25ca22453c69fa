package service

import (
	"sort"
	"strconv"

	"farm-advisory/internal/model"
)

// CropRecommendationCollection stores saved crop recommendations
type CropRecommendationCollection struct {
	*collection[model.CropRecommendation, *model.CropRecommendation]
}

// WaterUsageCollection stores water-usage estimates
type WaterUsageCollection struct {
	*collection[model.WaterUsageRecord, *model.WaterUsageRecord]
}

// CommunityPostCollection stores forum posts. Reads always come back
// newest first, whatever order the stored document has.
type CommunityPostCollection struct {
	*collection[model.CommunityPost, *model.CommunityPost]
}

// AddReply appends a reply to the post with the given id and returns the
// updated post; ok is false if there is no such post.
func (c *CommunityPostCollection) AddReply(postID string, reply model.Reply) (model.CommunityPost, bool) {
	c.m.mu.Lock()
	defer c.m.mu.Unlock()

	posts := c.load()
	i := indexOf[model.CommunityPost](posts, postID)
	if i < 0 {
		return model.CommunityPost{}, false
	}
	post := &posts[i]
	if post.Replies == nil {
		post.Replies = []model.Reply{}
	}
	replyIDs := make([]string, len(post.Replies))
	for i, r := range post.Replies {
		replyIDs[i] = string(r.ID)
	}
	reply.ID = model.ID(c.m.nextID(replyIDs))
	reply.CreatedAt = model.NewTimestamp(c.m.timestamp())
	post.Replies = append(post.Replies, reply)
	c.save(posts)
	return *post, true
}

// Like increments the like counter of a post
func (c *CommunityPostCollection) Like(postID string) (model.CommunityPost, bool) {
	c.m.mu.Lock()
	defer c.m.mu.Unlock()

	posts := c.load()
	i := indexOf[model.CommunityPost](posts, postID)
	if i < 0 {
		return model.CommunityPost{}, false
	}
	if posts[i].Likes < 0 {
		posts[i].Likes = 0
	}
	posts[i].Likes++
	c.save(posts)
	return posts[i], true
}

// sortNewestFirst orders posts by creation time, newest first. Posts created
// in the same instant fall back to id order, which follows creation order.
func sortNewestFirst(posts []model.CommunityPost) {
	sort.SliceStable(posts, func(i, j int) bool {
		a, b := posts[i], posts[j]
		if !a.CreatedAt.Equal(b.CreatedAt.Time) {
			return a.CreatedAt.After(b.CreatedAt.Time)
		}
		return idGreater(string(a.ID), string(b.ID))
	})
}

func idGreater(a, b string) bool {
	ai, errA := strconv.ParseInt(a, 10, 64)
	bi, errB := strconv.ParseInt(b, 10, 64)
	if errA == nil && errB == nil {
		return ai > bi
	}
	return a > b
}

// NotificationCollection stores in-app notifications
type NotificationCollection struct {
	*collection[model.Notification, *model.Notification]
}

// GetUnread returns the notifications not yet marked as read
func (c *NotificationCollection) GetUnread() []model.Notification {
	c.m.mu.Lock()
	defer c.m.mu.Unlock()
	return unread(c.load())
}

// MarkAsRead flags the notification with the given id as read and returns
// it. Unknown ids are ignored and report ok=false.
func (c *NotificationCollection) MarkAsRead(id string) (model.Notification, bool) {
	c.m.mu.Lock()
	defer c.m.mu.Unlock()

	notifications := c.load()
	i := indexOf[model.Notification](notifications, id)
	if i < 0 {
		return model.Notification{}, false
	}
	if !notifications[i].Read {
		notifications[i].Read = true
		c.save(notifications)
	}
	return notifications[i], true
}

func unread(notifications []model.Notification) []model.Notification {
	out := []model.Notification{}
	for _, n := range notifications {
		if !n.Read {
			out = append(out, n)
		}
	}
	return out
}
