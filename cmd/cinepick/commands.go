package main

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mmcdole/cinepick/internal/domain"
	"github.com/mmcdole/cinepick/internal/history"
	"github.com/mmcdole/cinepick/internal/service"
)

const defaultRecommendLimit = 10

func parseID(s string) (int, error) {
	id, err := strconv.Atoi(s)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid id: %q", s)
	}
	return id, nil
}

func parseFloat(name, s string) (float64, error) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %q", name, s)
	}
	return v, nil
}

func browseCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "browse <endpoint>",
		Short: "List a catalog endpoint, e.g. /movie/popular?page=2",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(ctx context.Context, a *app) error {
				tag := a.gen.Current()
				page := a.gateway.FetchListing(ctx, args[0])
				return a.deliver(tag, func() { a.out.Page(page) })
			})
		},
	}
}

func detailCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "detail <movie|tv> <id>",
		Short: "Show a title's full record",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			mediaType, err := domain.ParseMediaType(args[0])
			if err != nil {
				return err
			}
			id, err := parseID(args[1])
			if err != nil {
				return err
			}

			return withApp(cmd, func(ctx context.Context, a *app) error {
				tag := a.gen.Current()
				d, err := a.gateway.FetchDetail(ctx, id, mediaType)
				if errors.Is(err, domain.ErrBlocked) {
					return a.deliver(tag, func() { a.out.Empty("content available for this title") })
				}
				if err != nil {
					return err
				}

				var progress *domain.WatchProgress
				if mediaType == domain.MediaTypeTV {
					if wp, ok := a.history.GetShowProgress(id); ok {
						progress = &wp
					}
				} else if wp, ok := a.history.GetProgress(id, mediaType, 0, 0); ok {
					progress = &wp
				}
				next, hasNext := a.history.NextEpisode(id)

				return a.deliver(tag, func() {
					a.out.Detail(d, progress)
					if mediaType == domain.MediaTypeTV && hasNext {
						a.out.Success("Up next: S%02dE%02d", next.SeasonNumber, next.EpisodeNumber)
					}
				})
			})
		},
	}
}

func seasonCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "season <tv-id> <season>",
		Short: "List a season's episodes with watch status",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			number, err := strconv.Atoi(args[1])
			if err != nil || number < 0 {
				return fmt.Errorf("invalid season number: %q", args[1])
			}

			return withApp(cmd, func(ctx context.Context, a *app) error {
				tag := a.gen.Current()
				season, err := a.gateway.FetchSeasonEpisodes(ctx, id, number)
				if err != nil {
					return err
				}
				progress := make(map[int]domain.WatchProgress)
				for _, ep := range season.Episodes {
					if wp, ok := a.history.GetProgress(id, domain.MediaTypeTV, number, ep.EpisodeNumber); ok {
						progress[ep.EpisodeNumber] = wp
					}
				}
				return a.deliver(tag, func() { a.out.Season(season, progress) })
			})
		},
	}
}

func searchCmd() *cobra.Command {
	var mediaType string

	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Search titles",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			mt, err := domain.ParseMediaType(mediaType)
			if err != nil {
				return err
			}
			return withApp(cmd, func(ctx context.Context, a *app) error {
				tag := a.gen.Current()
				page, err := a.search.Search(ctx, strings.Join(args, " "), mt)
				if err != nil {
					return err
				}
				return a.deliver(tag, func() { a.out.Page(page) })
			})
		},
	}

	cmd.Flags().StringVarP(&mediaType, "type", "t", "movie", "media type (movie or tv)")
	return cmd
}

func suggestCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "suggest <query>",
		Short: "Show quick search suggestions",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(ctx context.Context, a *app) error {
				tag := a.gen.Current()
				titles := a.search.Suggest(ctx, strings.Join(args, " "))
				return a.deliver(tag, func() { a.out.Titles(titles) })
			})
		},
	}
}

func recentCmd() *cobra.Command {
	var clearAll bool

	cmd := &cobra.Command{
		Use:   "recent [pattern]",
		Short: "List recent searches",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(ctx context.Context, a *app) error {
				if clearAll {
					if err := a.search.ClearHistory(); err != nil {
						return err
					}
					a.out.Success("Cleared search history")
					return nil
				}
				var pattern string
				if len(args) == 1 {
					pattern = args[0]
				}
				a.out.Queries(a.search.RecentQueries(pattern))
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&clearAll, "clear", false, "forget all recent searches")
	return cmd
}

func historyCmd() *cobra.Command {
	var filter string

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List watch history",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := domain.ParseHistoryFilter(filter)
			if err != nil {
				return err
			}
			return withApp(cmd, func(ctx context.Context, a *app) error {
				a.out.History(a.history.ListHistory(f))
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&filter, "filter", "f", "all", "all, in_progress or completed")
	return cmd
}

func statsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show watch statistics",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(ctx context.Context, a *app) error {
				a.out.Stats(a.history.ComputeStats())
				return nil
			})
		},
	}
}

func progressCmd() *cobra.Command {
	var season, episode int

	cmd := &cobra.Command{
		Use:   "progress <movie|tv> <id> <position-seconds> <duration-seconds>",
		Short: "Record a playback position",
		Args:  cobra.ExactArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			mediaType, err := domain.ParseMediaType(args[0])
			if err != nil {
				return err
			}
			id, err := parseID(args[1])
			if err != nil {
				return err
			}
			pos, err := parseFloat("position", args[2])
			if err != nil {
				return err
			}
			dur, err := parseFloat("duration", args[3])
			if err != nil {
				return err
			}

			return withApp(cmd, func(ctx context.Context, a *app) error {
				wp, err := a.history.RecordProgress(history.ProgressUpdate{
					TitleID:         id,
					MediaType:       mediaType,
					SeasonNumber:    season,
					EpisodeNumber:   episode,
					PositionSeconds: pos,
					DurationSeconds: dur,
				})
				if err != nil {
					return err
				}
				a.out.History([]domain.WatchProgress{wp})
				return nil
			})
		},
	}

	cmd.Flags().IntVarP(&season, "season", "s", 1, "season number (tv)")
	cmd.Flags().IntVarP(&episode, "episode", "e", 0, "episode number (tv)")
	return cmd
}

func forgetCmd() *cobra.Command {
	var mediaType string

	cmd := &cobra.Command{
		Use:   "forget <id>",
		Short: "Remove a title from watch history",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			mt, err := domain.ParseMediaType(mediaType)
			if err != nil {
				return err
			}
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return withApp(cmd, func(ctx context.Context, a *app) error {
				if err := a.history.RemoveEntry(id, mt); err != nil {
					return err
				}
				a.out.Success("Removed %s %d from history", mt, id)
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&mediaType, "type", "t", "movie", "media type (movie or tv)")
	return cmd
}

func resetCmd() *cobra.Command {
	var confirmed bool

	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Erase watch history, recent searches and dislikes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !confirmed {
				return errors.New("reset erases all local data; pass --yes to confirm")
			}
			return withApp(cmd, func(ctx context.Context, a *app) error {
				if err := a.local.Reset(); err != nil {
					return err
				}
				a.out.Success("Erased local data")
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&confirmed, "yes", false, "confirm erasing local data")
	return cmd
}

func recommendCmd() *cobra.Command {
	var (
		endpoint   string
		limit      int
		genreBased bool
	)

	cmd := &cobra.Command{
		Use:   "recommend",
		Short: "Rank a listing against your taste",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(ctx context.Context, a *app) error {
				tag := a.gen.Current()
				recs := a.recs.Personalized(ctx, a.cfg.User.ID, endpoint, limit, genreBased)
				return a.deliver(tag, func() { a.out.Recommendations(recs) })
			})
		},
	}

	cmd.Flags().StringVar(&endpoint, "endpoint", "/movie/popular", "listing to rank")
	cmd.Flags().IntVarP(&limit, "limit", "n", defaultRecommendLimit, "number of titles")
	cmd.Flags().BoolVar(&genreBased, "genre", false, "only titles in your top genres")
	return cmd
}

func todayCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "today",
		Short: "Pick one title for today",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(ctx context.Context, a *app) error {
				tag := a.gen.Current()
				pick, err := a.recs.Today(ctx, a.cfg.User.ID)
				if err != nil {
					return err
				}
				return a.deliver(tag, func() { a.out.DailyPick(pick) })
			})
		},
	}
}

func dislikeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "dislike <id>",
		Short: "Hide a title from recommendations",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return withApp(cmd, func(ctx context.Context, a *app) error {
				if err := a.recs.Dislike(id); err != nil {
					return err
				}
				a.out.Success("Hidden %d from recommendations", id)
				return nil
			})
		},
	}
}

func favoriteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "favorite <movie|tv> <id>",
		Short: "Add or remove a favorite",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			mediaType, err := domain.ParseMediaType(args[0])
			if err != nil {
				return err
			}
			id, err := parseID(args[1])
			if err != nil {
				return err
			}
			return withApp(cmd, func(ctx context.Context, a *app) error {
				d, err := a.gateway.FetchDetail(ctx, id, mediaType)
				if err != nil {
					return err
				}
				added, err := a.favorites.Toggle(ctx, a.cfg.User.ID, d.Title)
				if err != nil {
					return err
				}
				if added {
					a.out.Success("Added %s to favorites", d.Name)
				} else {
					a.out.Success("Removed %s from favorites", d.Name)
				}
				return nil
			})
		},
	}
}

func favoritesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "favorites",
		Short: "List your favorites",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(ctx context.Context, a *app) error {
				favs, err := a.favorites.List(ctx, a.cfg.User.ID)
				if err != nil {
					return err
				}
				a.out.Favorites(favs)
				return nil
			})
		},
	}
}

func commentCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "comment <id> <rating> <text>",
		Short: "Comment on a title (rating 0 for none)",
		Args:  cobra.MinimumNArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			rating, err := parseFloat("rating", args[1])
			if err != nil {
				return err
			}
			return withApp(cmd, func(ctx context.Context, a *app) error {
				c, err := a.comments.Add(ctx, service.CommentInput{
					TitleID:  id,
					UserID:   a.cfg.User.ID,
					UserName: a.cfg.User.Name,
					Text:     strings.Join(args[2:], " "),
					Rating:   rating,
				})
				if err != nil {
					return err
				}
				if c.IsSpoiler {
					a.out.Success("Saved comment (marked as spoiler)")
				} else {
					a.out.Success("Saved comment")
				}
				return nil
			})
		},
	}
}

func commentsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "comments <id>",
		Short: "List a title's comments",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return withApp(cmd, func(ctx context.Context, a *app) error {
				comments, err := a.comments.List(ctx, id)
				if err != nil {
					return err
				}
				a.out.Comments(comments)
				return nil
			})
		},
	}
}

func keywordsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "keywords",
		Short: "Show the remote banned keyword list",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(ctx context.Context, a *app) error {
				keywords := a.loader.Load(ctx)
				if len(keywords) == 0 {
					a.out.Empty("remote keywords")
					return nil
				}
				a.out.Header(fmt.Sprintf("%d remote keywords", len(keywords)))
				a.out.Queries(keywords)
				return nil
			})
		},
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "set <keyword>...",
		Short: "Replace the remote banned keyword list",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(ctx context.Context, a *app) error {
				if a.docs == nil {
					return domain.ErrDocStoreUnavailable
				}
				if err := a.docs.SaveBannedKeywords(ctx, args); err != nil {
					return err
				}
				a.out.Success("Saved %d banned keywords", len(args))
				return nil
			})
		},
	})
	return cmd
}
