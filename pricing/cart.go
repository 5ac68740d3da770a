package pricing

import (
	"math"
	"sync"

	"sinar-terang/models"
)

// LineItem is one product in the cart. Values are replaced as a whole on every
// mutation, so a LineItem handed out by the cart never changes afterwards.
type LineItem struct {
	ProductID   int    `json:"id"`
	Name        string `json:"name"`
	Unit        string `json:"satuan"`
	Quantity    int    `json:"quantity"`
	Price       int64  `json:"harga"`
	BasePrice   int64  `json:"original_harga"`
	ManualPrice *int64 `json:"manual_harga,omitempty"`
	Subtotal    int64  `json:"sub_total"`

	// tiers as they were when the product entered the cart
	product models.Product
}

// Overridden reports whether an operator pinned the unit price.
func (l LineItem) Overridden() bool {
	return l.ManualPrice != nil
}

func newLineItem(p models.Product, memberID int) (LineItem, bool) {
	snapshot := p.Clone()
	line := LineItem{
		ProductID: snapshot.ID,
		Name:      snapshot.Name,
		Unit:      snapshot.Unit,
		Quantity:  1,
		BasePrice: snapshot.Price,
		product:   snapshot,
	}
	return line.repriced(memberID)
}

// repriced reports false when the line subtotal would not fit in an int64.
func (l LineItem) repriced(memberID int) (LineItem, bool) {
	l.Price = Resolve(l.product, memberID, l.Quantity, l.ManualPrice)
	subtotal, ok := LineTotal(l.Quantity, l.Price)
	if !ok {
		return LineItem{}, false
	}
	l.Subtotal = subtotal
	return l, true
}

// Snapshot is an immutable copy of a cart at one point in time.
type Snapshot struct {
	MemberID   int        `json:"member_id"`
	Lines      []LineItem `json:"products"`
	GrandTotal int64      `json:"total"`
	ItemCount  int        `json:"total_items"`
}

// Submission serialises the snapshot into the sales recording payload.
func (s Snapshot) Submission(kasirID int) models.CreateSaleRequest {
	lines := make([]models.SaleLineRequest, 0, len(s.Lines))
	for _, l := range s.Lines {
		lines = append(lines, models.SaleLineRequest{
			ProductID: l.ProductID,
			Price:     l.Price,
			Quantity:  l.Quantity,
		})
	}
	return models.CreateSaleRequest{
		KasirID:  kasirID,
		MemberID: s.MemberID,
		Total:    s.GrandTotal,
		Products: lines,
	}
}

// Cart holds the line items of one checkout session and keeps their prices and
// the cart totals consistent. It is safe for concurrent use; writers are
// serialised and readers only ever see a fully applied mutation.
type Cart struct {
	mu        sync.RWMutex
	memberID  int
	lines     []LineItem
	total     int64
	itemCount int
}

func NewCart(memberID int) *Cart {
	return &Cart{memberID: memberID}
}

// AddProduct inserts p with quantity 1, or bumps the quantity of an existing line.
// The cart is left unchanged when the new line or cart total would overflow.
func (c *Cart) AddProduct(p models.Product) (LineItem, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if i := c.find(p.ID); i >= 0 {
		next := c.lines[i]
		if next.Quantity == math.MaxInt {
			return LineItem{}, ErrInvalidQuantity
		}
		next.Quantity++
		return c.replace(i, next, ErrInvalidQuantity)
	}

	line, ok := newLineItem(p, c.memberID)
	if !ok {
		return LineItem{}, ErrInvalidPrice
	}
	lines := append(append(make([]LineItem, 0, len(c.lines)+1), c.lines...), line)
	if !c.commit(lines) {
		return LineItem{}, ErrInvalidPrice
	}
	return line, nil
}

func (c *Cart) ChangeQuantity(productID, quantity int) (LineItem, error) {
	if quantity < 1 {
		return LineItem{}, ErrInvalidQuantity
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	i := c.find(productID)
	if i < 0 {
		return LineItem{}, ErrItemNotInCart
	}
	next := c.lines[i]
	next.Quantity = quantity
	return c.replace(i, next, ErrInvalidQuantity)
}

// SetManualPrice pins the unit price of a line. A nil price clears the pin and
// the line is priced automatically again.
func (c *Cart) SetManualPrice(productID int, price *int64) (LineItem, error) {
	if price != nil && *price < 0 {
		return LineItem{}, ErrInvalidPrice
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	i := c.find(productID)
	if i < 0 {
		return LineItem{}, ErrItemNotInCart
	}
	next := c.lines[i]
	next.ManualPrice = nil
	if price != nil {
		pinned := *price
		next.ManualPrice = &pinned
	}
	return c.replace(i, next, ErrInvalidPrice)
}

// ChangeMember reprices every line that has no manual price. When the member
// prices would overflow a total the cart keeps its current member.
func (c *Cart) ChangeMember(memberID int) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	lines := make([]LineItem, len(c.lines))
	for i, l := range c.lines {
		if l.Overridden() {
			lines[i] = l
			continue
		}
		next, ok := l.repriced(memberID)
		if !ok {
			return ErrInvalidPrice
		}
		lines[i] = next
	}
	if !c.commit(lines) {
		return ErrInvalidPrice
	}
	c.memberID = memberID
	return nil
}

// RemoveProduct drops the line for productID. Removing an absent product is a no-op.
func (c *Cart) RemoveProduct(productID int) {
	c.mu.Lock()
	defer c.mu.Unlock()

	i := c.find(productID)
	if i < 0 {
		return
	}
	lines := make([]LineItem, 0, len(c.lines)-1)
	lines = append(lines, c.lines[:i]...)
	lines = append(lines, c.lines[i+1:]...)
	c.commit(lines)
}

// Clear empties the cart and resets the member to the general public.
func (c *Cart) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.memberID = models.GeneralMemberID
	c.commit(nil)
}

func (c *Cart) GrandTotal() int64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.total
}

func (c *Cart) ItemCount() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.itemCount
}

func (c *Cart) MemberID() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.memberID
}

func (c *Cart) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.lines)
}

// Lines returns the line items in insertion order.
func (c *Cart) Lines() []LineItem {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]LineItem(nil), c.lines...)
}

// Line returns the line for productID.
func (c *Cart) Line(productID int) (LineItem, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if i := c.find(productID); i >= 0 {
		return c.lines[i], true
	}
	return LineItem{}, false
}

func (c *Cart) Snapshot() Snapshot {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return Snapshot{
		MemberID:   c.memberID,
		Lines:      append([]LineItem{}, c.lines...),
		GrandTotal: c.total,
		ItemCount:  c.itemCount,
	}
}

func (c *Cart) find(productID int) int {
	for i, l := range c.lines {
		if l.ProductID == productID {
			return i
		}
	}
	return -1
}

// replace swaps line i for next, repriced. fail is returned, and the cart left
// as it was, when the amounts would overflow. mu must be held for writing.
func (c *Cart) replace(i int, next LineItem, fail error) (LineItem, error) {
	line, ok := next.repriced(c.memberID)
	if !ok {
		return LineItem{}, fail
	}
	lines := append([]LineItem(nil), c.lines...)
	lines[i] = line
	if !c.commit(lines) {
		return LineItem{}, fail
	}
	return line, nil
}

// commit installs lines and their totals, or reports false without touching
// the cart when a total does not fit. mu must be held for writing.
func (c *Cart) commit(lines []LineItem) bool {
	var total int64
	var count int
	for _, l := range lines {
		var ok bool
		if total, ok = AddAmount(total, l.Subtotal); !ok {
			return false
		}
		if count > math.MaxInt-l.Quantity {
			return false
		}
		count += l.Quantity
	}
	c.lines = lines
	c.total = total
	c.itemCount = count
	return true
}
