// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/MKhiriev/go-fleed/internal/service"
	"github.com/MKhiriev/go-fleed/models"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

type postListKind int

const (
	homeList postListKind = iota
	videoList
	profileList
)

// postListScreen renders one post list: the home feed, the video feed or
// the posts of a profile.
type postListScreen struct {
	ctx      context.Context
	services *service.ClientServices
	session  models.Session
	send     func(tea.Msg)

	kind    postListKind
	feed    *service.PostFeed
	profile *models.Profile
	idx     int
	errMsg  string
}

func newPostListScreen(ctx context.Context, env screenEnv, kind postListKind, userID int64) (*postListScreen, error) {
	scope := models.AllPosts()
	switch kind {
	case videoList:
		scope = models.VideoPosts()
	case profileList:
		scope = models.UserPosts(userID)
	}

	feed, err := env.services.FeedService.OpenPosts(scope)
	if err != nil {
		return nil, err
	}

	return &postListScreen{
		ctx:      ctx,
		services: env.services,
		session:  env.session,
		send:     env.send,
		kind:     kind,
		feed:     feed,
	}, nil
}

func (s *postListScreen) Init() tea.Cmd {
	cmds := []tea.Cmd{s.cmdFetch(), s.cmdSubscribe()}
	if s.kind == profileList {
		cmds = append(cmds, s.cmdLoadProfile())
	}
	return tea.Batch(cmds...)
}

func (s *postListScreen) typing() bool { return false }

func (s *postListScreen) close() {
	s.feed.Close()
}

func (s *postListScreen) Update(msg tea.Msg) (screen, tea.Cmd) {
	switch msg := msg.(type) {
	case fetchedMsg:
		if msg.source == s {
			s.errMsg = userMessage(msg.err)
		}
	case subscribedMsg:
		if msg.source == s && msg.err != nil {
			s.errMsg = userMessage(msg.err)
		}
	case profileLoadedMsg:
		if msg.source != s {
			return s, nil
		}
		if msg.err != nil {
			s.errMsg = userMessage(msg.err)
			return s, nil
		}
		profile := msg.profile
		s.profile = &profile
	case likeToggledMsg:
		if msg.source == s && msg.err != nil {
			return s, errorCmd(msg.err)
		}
	case followToggledMsg:
		if msg.source != s {
			return s, nil
		}
		if msg.err != nil {
			return s, errorCmd(msg.err)
		}
		if s.profile != nil && s.profile.Following != msg.following {
			s.profile.Following = msg.following
			if msg.following {
				s.profile.Counts.Followers++
			} else {
				s.profile.Counts.Followers--
			}
		}
	case listChangedMsg:
		s.idx = clampIndex(s.idx, len(s.feed.Items()))
	case tea.KeyMsg:
		return s.handleKey(msg)
	}

	return s, nil
}

func (s *postListScreen) handleKey(msg tea.KeyMsg) (screen, tea.Cmd) {
	snapshot := s.feed.Snapshot()
	s.idx = clampIndex(s.idx, len(snapshot.Items))

	switch {
	case key.Matches(msg, keys.up):
		if s.idx > 0 {
			s.idx--
		}
		return s, nil
	case key.Matches(msg, keys.down):
		if s.idx < len(snapshot.Items)-1 {
			s.idx++
		}
		if s.idx >= len(snapshot.Items)-1 && snapshot.HasMore && !snapshot.Fetching {
			return s, s.cmdFetch()
		}
		return s, nil
	case key.Matches(msg, keys.refresh):
		return s, s.refresh()
	case key.Matches(msg, keys.newPost):
		return s, pushCmd(newComposeScreen(s.ctx, s.env(), models.Post{}))
	case key.Matches(msg, keys.myProfile):
		if s.kind == profileList {
			return s, s.switchUser(s.session.UserID)
		}
		return s, openPostListCmd(s.ctx, s.env(), profileList, s.session.UserID)
	case key.Matches(msg, keys.follow):
		if s.kind == profileList && s.profile != nil && !s.profile.Own {
			return s, s.cmdToggleFollow(s.profile.User.ID, !s.profile.Following)
		}
		return s, nil
	case key.Matches(msg, keys.esc):
		if s.kind != homeList {
			return s, popCmd
		}
		return s, nil
	}

	if s.kind == homeList {
		switch {
		case key.Matches(msg, keys.videos):
			return s, openPostListCmd(s.ctx, s.env(), videoList, 0)
		case key.Matches(msg, keys.notifications):
			return s, pushCmd(newNotificationsScreen(s.ctx, s.env()))
		case key.Matches(msg, keys.logout):
			return s, func() tea.Msg { return logoutMsg{} }
		}
	}

	if len(snapshot.Items) == 0 {
		return s, nil
	}
	post := snapshot.Items[s.idx]

	switch {
	case key.Matches(msg, keys.enter):
		return s, openDetailCmd(s.ctx, s.env(), post.ID)
	case key.Matches(msg, keys.like):
		return s, s.cmdToggleLike(post.ID)
	case key.Matches(msg, keys.share):
		return s, shareCmd(s.services.PostService, post)
	case key.Matches(msg, keys.author):
		if s.kind == profileList {
			return s, s.switchUser(post.UserID)
		}
		return s, openPostListCmd(s.ctx, s.env(), profileList, post.UserID)
	case key.Matches(msg, keys.edit):
		if post.UserID != s.session.UserID {
			return s, statusCmd("Можно изменить только свой пост")
		}
		return s, pushCmd(newComposeScreen(s.ctx, s.env(), post))
	case key.Matches(msg, keys.delete):
		if post.UserID != s.session.UserID {
			return s, statusCmd("Можно удалить только свой пост")
		}
		return s, confirmCmd(fitText(plainText(post.Body), 30), s.cmdDelete(post.ID))
	}

	return s, nil
}

// refresh drops the held posts and loads the first page again.
func (s *postListScreen) refresh() tea.Cmd {
	s.feed.Reset(s.feed.Scope())
	s.idx = 0
	s.errMsg = ""
	return tea.Batch(s.cmdFetch(), s.cmdSubscribe())
}

// switchUser shows the profile of another user in this screen.
func (s *postListScreen) switchUser(userID int64) tea.Cmd {
	if s.profile != nil && s.profile.User.ID == userID {
		return nil
	}

	s.feed.Reset(models.UserPosts(userID))
	s.profile = nil
	s.idx = 0
	s.errMsg = ""
	return tea.Batch(s.cmdFetch(), s.cmdSubscribe(), s.cmdLoadProfile())
}

func (s *postListScreen) env() screenEnv {
	return screenEnv{services: s.services, session: s.session, send: s.send}
}

func (s *postListScreen) title() string {
	switch s.kind {
	case videoList:
		return "ВИДЕО"
	case profileList:
		return "ПРОФИЛЬ"
	default:
		return "ЛЕНТА"
	}
}

func (s *postListScreen) hotKeys() string {
	common := "↑/↓: навигация │ enter: открыть │ l: лайк │ s: поделиться │ a: автор │ n: новый │ e: изменить │ d: удалить │ r: обновить"
	switch s.kind {
	case homeList:
		return common + "\nv: видео │ p: мой профиль │ i: уведомления │ b: версия │ o: выйти из аккаунта │ q: выход"
	case profileList:
		return common + "\nf: подписаться/отписаться │ p: мой профиль │ esc: назад"
	default:
		return common + "\nesc: назад"
	}
}

func (s *postListScreen) View() string {
	snapshot := s.feed.Snapshot()
	idx := clampIndex(s.idx, len(snapshot.Items))

	var b strings.Builder
	if s.kind == profileList {
		s.writeProfile(&b)
	}

	if s.feed.Live() {
		b.WriteString(helpStyle.Render("● обновления в реальном времени"))
	} else {
		b.WriteString(helpStyle.Render("○ только загрузка по страницам"))
	}
	b.WriteString("\n\n")

	from, to := listWindow(idx, len(snapshot.Items), listRows)
	for i := from; i < to; i++ {
		b.WriteString(s.renderRow(snapshot.Items[i], i, i == idx))
		b.WriteString("\n")
	}

	switch {
	case snapshot.Fetching:
		b.WriteString("\nЗагрузка...\n")
	case len(snapshot.Items) == 0:
		b.WriteString("Постов нет\n")
	case !snapshot.HasMore:
		b.WriteString(helpStyle.Render("\nБольше постов нет"))
		b.WriteString("\n")
	}
	writeFooter(&b, "", s.errMsg)

	return renderPage(s.title(), strings.TrimRight(b.String(), "\n"), s.hotKeys())
}

func (s *postListScreen) writeProfile(b *strings.Builder) {
	if s.profile == nil {
		b.WriteString("Загрузка профиля...\n\n")
		return
	}

	b.WriteString(authorStyle.Render(authorName(s.profile.User)))
	if s.profile.Own {
		b.WriteString(" (это вы)")
	} else if s.profile.Following {
		b.WriteString(" │ вы подписаны")
	}
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("Подписчики: %d │ Подписки: %d\n\n", s.profile.Counts.Followers, s.profile.Counts.Following))
}

func (s *postListScreen) renderRow(post models.Post, i int, selected bool) string {
	like := "♡"
	if post.LikedBy(s.session.UserID) {
		like = "♥"
	}

	row := fmt.Sprintf("%s %2d │ %-14s │ %s │ %s %d │ ✉ %d │ %s%s",
		cursorMark(selected),
		i+1,
		fitText(authorName(post.Author), 14),
		formatTime(post.CreatedAt),
		like, len(post.Likes),
		post.CommentCount,
		mediaLabel(post),
		fitText(plainText(post.Body), previewWidth),
	)
	if selected {
		return selectedStyle.Render(row)
	}
	return row
}

func (s *postListScreen) cmdFetch() tea.Cmd {
	feed, ctx := s.feed, s.ctx
	return func() tea.Msg {
		_, err := feed.RequestMore(ctx)
		return fetchedMsg{source: s, err: err}
	}
}

func (s *postListScreen) cmdSubscribe() tea.Cmd {
	feed, ctx, send := s.feed, s.ctx, s.send
	return func() tea.Msg {
		err := feed.Subscribe(ctx, func() { send(listChangedMsg{}) })
		return subscribedMsg{source: s, err: err}
	}
}

func (s *postListScreen) cmdLoadProfile() tea.Cmd {
	profiles, ctx, userID := s.services.ProfileService, s.ctx, s.feed.Scope().UserID
	return func() tea.Msg {
		profile, err := profiles.GetProfile(ctx, userID)
		return profileLoadedMsg{source: s, profile: profile, err: err}
	}
}

func (s *postListScreen) cmdToggleLike(postID int64) tea.Cmd {
	feed, ctx := s.feed, s.ctx
	return func() tea.Msg {
		liked, err := feed.ToggleLike(ctx, postID)
		return likeToggledMsg{source: s, liked: liked, err: err}
	}
}

func (s *postListScreen) cmdToggleFollow(userID int64, follow bool) tea.Cmd {
	profiles, ctx := s.services.ProfileService, s.ctx
	return func() tea.Msg {
		err := profiles.SetFollowing(ctx, userID, follow)
		return followToggledMsg{source: s, following: follow, err: err}
	}
}

func (s *postListScreen) cmdDelete(postID int64) tea.Cmd {
	feed, ctx := s.feed, s.ctx
	return func() tea.Msg {
		if err := feed.DeletePost(ctx, postID); err != nil {
			return errorMsg{err: err}
		}
		return statusMsg{text: "Пост удалён"}
	}
}
