// Package export выгружает журнал доступа постранично в локальное хранилище
package export

import (
	"context"
	"fmt"

	pkgapi "github.com/iudanet/hubctl/pkg/api"
)

// DefaultPageSize размер страницы при выгрузке
const DefaultPageSize = 100

// Lister читает страницы журнала доступа
type Lister interface {
	ListAccessRecords(ctx context.Context, q pkgapi.AccessRecordQuery) (*pkgapi.PageResponse[pkgapi.AccessRecord], error)
}

// Sink сохраняет записи журнала
type Sink interface {
	SaveAccessRecords(ctx context.Context, records []pkgapi.AccessRecord) (int, error)
}

// AccessRecords проходит по всем страницам q и сохраняет записи в sink.
// Фильтры q сохраняются, пагинация задается здесь. Возвращает число сохраненных записей.
func AccessRecords(ctx context.Context, lister Lister, sink Sink, q pkgapi.AccessRecordQuery, progress func(saved, total int)) (int, error) {
	if q.PageSize <= 0 {
		q.PageSize = DefaultPageSize
	}

	saved := 0
	for page := 1; ; page++ {
		q.Page = page
		resp, err := lister.ListAccessRecords(ctx, q)
		if err != nil {
			return saved, fmt.Errorf("failed to fetch page %d: %w", page, err)
		}

		n, err := sink.SaveAccessRecords(ctx, resp.List)
		if err != nil {
			return saved, fmt.Errorf("failed to save page %d: %w", page, err)
		}
		saved += n
		if progress != nil {
			progress(saved, resp.Total)
		}

		if len(resp.List) < q.PageSize || saved >= resp.Total {
			return saved, nil
		}
	}
}
