package catalog

import (
	"strconv"

	"github.com/samber/lo"
	"go.opentelemetry.io/otel/metric"
	"go.uber.org/zap"

	"github.com/benz9527/xcatalog/lib/infra"
	"github.com/benz9527/xcatalog/lib/tree"
	"github.com/benz9527/xcatalog/observability"
	"github.com/benz9527/xcatalog/xlog"
)

const ErrEmptyISBN catalogErr = "catalog empty isbn"

type catalogErr string

func (err catalogErr) Error() string {
	return string(err)
}

type Book struct {
	ISBN   string
	Title  string
	Author string
	Year   *int // Unknown if nil.
}

// Entry is a book with the color of the node holding it.
type Entry struct {
	Book
	Color tree.RBColor
}

// Catalog keeps the books ordered by ISBN.
// It is not safe for concurrent use.
type Catalog struct {
	name   string
	books  tree.RBTree[Book]
	logger xlog.XLogger
	stats  *observability.CatalogStats
}

func (c *Catalog) Name() string {
	return c.name
}

func (c *Catalog) Len() int64 {
	return c.books.Len()
}

// Save inserts the book, or replaces the book with the same ISBN.
// It returns true if the book is new.
func (c *Catalog) Save(book Book) (bool, error) {
	if len(book.ISBN) == 0 {
		err := infra.WrapErrorStackWithMessage(ErrEmptyISBN, "save book "+strconv.Quote(book.Title))
		c.logger.ErrorStack(err, "save book rejected")
		return false, err
	}
	_, exists := c.books.Search(book.ISBN)
	c.books.Insert(book.ISBN, book)
	c.stats.RecordSave(!exists)
	c.logger.Debug("save book",
		zap.String("isbn", book.ISBN),
		zap.Bool("inserted", !exists),
		zap.Int64("len", c.books.Len()),
	)
	return !exists, nil
}

// Remove deletes the book by ISBN. The isbn is converted
// by infra.CanonicalKey.
func (c *Catalog) Remove(isbn any) bool {
	key := infra.CanonicalKey(isbn)
	removed := c.books.Delete(key)
	c.stats.RecordRemove(removed)
	c.logger.Debug("remove book",
		zap.String("isbn", key),
		zap.Bool("removed", removed),
		zap.Int64("len", c.books.Len()),
	)
	return removed
}

// Find looks up the book by ISBN and reports the color of its node.
func (c *Catalog) Find(isbn any) (Book, tree.RBColor, bool) {
	key := infra.CanonicalKey(isbn)
	node, ok := c.books.Search(key)
	c.stats.RecordLookup(ok)
	c.logger.Debug("find book",
		zap.String("isbn", key),
		zap.Bool("found", ok),
	)
	if !ok {
		return Book{}, tree.Black, false
	}
	return node.Val(), node.Color(), true
}

// List returns the books in ascending ISBN order.
func (c *Catalog) List() []Entry {
	return lo.Map(c.books.Inorder(), func(e tree.RBEntry[Book], _ int) Entry {
		return Entry{Book: e.Val, Color: e.Color}
	})
}

// Release drops all books.
func (c *Catalog) Release() {
	n := c.books.Len()
	c.stats.RecordRelease(n)
	c.logger.Debug("release catalog", zap.Int64("len", n))
	c.books.Release()
}

type CatalogOption func(*catalogCfg) error

type catalogCfg struct {
	name   string
	logger xlog.XLogger
	mp     metric.MeterProvider
	stats  bool
}

func WithCatalogName(name string) CatalogOption {
	return func(cfg *catalogCfg) error {
		if len(name) == 0 {
			return infra.NewErrorStack("[catalog] empty name")
		}
		cfg.name = name
		return nil
	}
}

// WithCatalogLogger sets the parent logger created by xlog.NewXLogger.
// The catalog logs by a child named "catalog/<name>".
func WithCatalogLogger(logger xlog.XLogger) CatalogOption {
	return func(cfg *catalogCfg) error {
		if logger == nil {
			return infra.NewErrorStack("[catalog] nil logger")
		}
		cfg.logger = logger
		return nil
	}
}

// WithCatalogStats enables the metrics. The global meter
// provider will be used if mp is nil.
func WithCatalogStats(mp metric.MeterProvider) CatalogOption {
	return func(cfg *catalogCfg) error {
		cfg.stats = true
		cfg.mp = mp
		return nil
	}
}

func NewCatalog(opts ...CatalogOption) (*Catalog, error) {
	cfg := &catalogCfg{
		name: "default",
	}
	for _, o := range opts {
		if o == nil {
			continue
		}
		if err := o(cfg); err != nil {
			return nil, err
		}
	}
	if cfg.logger == nil {
		cfg.logger = xlog.NewXLogger()
	}
	c := &Catalog{
		name:   cfg.name,
		books:  tree.NewRBTree[Book](),
		logger: xlog.NewComponentXLogger(cfg.logger, "catalog/"+cfg.name),
	}
	if cfg.stats {
		c.stats = observability.NewCatalogStats(cfg.mp, cfg.name)
	}
	return c, nil
}
