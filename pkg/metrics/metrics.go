package metrics

import "github.com/prometheus/client_golang/prometheus"

type Metrics struct {
	SuccessfulRequests *prometheus.CounterVec
	BadRequests        *prometheus.CounterVec
	FollowRequests     *prometheus.CounterVec
	UnfollowRequests   *prometheus.CounterVec
	LikeRequests       *prometheus.CounterVec
	PictureUploads     *prometheus.CounterVec
}

func InitMetrics() *Metrics {
	m := &Metrics{
		SuccessfulRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "successful_request",
				Help: "Total number of successful (2xx) HTTP requests",
			},
			[]string{"path"},
		),
		BadRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "unsuccessful_request",
				Help: "Total number of unsuccessful (4xx/5xx) HTTP requests",
			},
			[]string{"path"},
		),
		FollowRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "successful_follows",
				Help: "Total number of successful follow requests",
			},
			[]string{"path"},
		),
		UnfollowRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "successful_unfollows",
				Help: "Total number of successful unfollow requests",
			},
			[]string{"path"},
		),
		LikeRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "successful_likes",
				Help: "Total number of successful like/unlike requests",
			},
			[]string{"path"},
		),
		PictureUploads: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "successful_picture_uploads",
				Help: "Total number of successful picture uploads",
			},
			[]string{"path"},
		),
	}

	prometheus.MustRegister(m.SuccessfulRequests)
	prometheus.MustRegister(m.BadRequests)
	prometheus.MustRegister(m.FollowRequests)
	prometheus.MustRegister(m.UnfollowRequests)
	prometheus.MustRegister(m.LikeRequests)
	prometheus.MustRegister(m.PictureUploads)

	return m
}
