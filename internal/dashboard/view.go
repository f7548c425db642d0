package dashboard

import (
	"time"

	"github.com/gauthierbraillon/contentmix/internal/aggregator"
	"github.com/gauthierbraillon/contentmix/internal/pagination"
	"github.com/gauthierbraillon/contentmix/internal/session"
	"github.com/gauthierbraillon/contentmix/internal/youtube"
)

// View is everything a render needs. It holds no references back into the
// session beyond the shared, read-only result set.
type View struct {
	Form    Form
	Orders  []youtube.Order
	Notice  *Notice
	Summary aggregator.Summary
	Records []youtube.VideoRecord
	Page    pagination.PageView
	Gallery []youtube.VideoRecord
}

// HasResults reports whether the data and gallery sections are rendered.
func (v View) HasResults() bool {
	return len(v.Records) > 0
}

// BuildView derives the render model from a session snapshot and the page
// number read from the address. form may be nil, in which case the stored
// search (or the defaults) pre-fill the form.
func (s *Service) BuildView(snap session.Snapshot, form *Form, page int, notice *Notice, now time.Time) View {
	v := View{
		Orders: youtube.Orders,
		Notice: notice,
	}

	switch {
	case form != nil:
		v.Form = *form
	case snap.Params != nil:
		v.Form = FormFromParams(*snap.Params)
	default:
		v.Form = DefaultForm(now)
	}

	if !snap.HasResults() {
		return v
	}

	v.Records = snap.Results
	v.Summary = s.agg.Aggregate(snap.Results)
	v.Page = pagination.New(len(snap.Results), s.pageSize, page)
	v.Gallery = pagination.SliceForPage(snap.Results, v.Page.PageNumber, s.pageSize)
	return v
}
