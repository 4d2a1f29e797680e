package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"warroom/internal/api"
	"warroom/internal/model"
)

type productsMode int

const (
	productsModeBrowse productsMode = iota
	productsModeForm
	productsModeConfirmDelete
)

type productsPanel struct {
	client *api.Client

	mode     productsMode
	products []model.Product
	cursor   int
	loading  bool
	status   string
	statErr  bool
	form     *productForm

	confirmID   int
	confirmName string

	width  int
	height int
}

type productsLoadedMsg struct {
	products []model.Product
	err      error
}

type productSavedMsg struct {
	product model.Product
	created bool
	err     error
}

type productDeletedMsg struct {
	id  int
	err error
}

func newProductsPanel(client *api.Client) productsPanel {
	return productsPanel{client: client, mode: productsModeBrowse}
}

func (p *productsPanel) setSize(width, height int) {
	p.width = width
	p.height = height
	if p.form != nil {
		p.form.Input.Width = clampInt(width-8, 20, 120)
	}
}

func (p productsPanel) capturesInput() bool {
	return p.mode != productsModeBrowse
}

func (p productsPanel) load() tea.Cmd {
	client := p.client
	return func() tea.Msg {
		products, err := client.ListProducts(context.Background(), api.ProductQuery{})
		return productsLoadedMsg{products: products, err: err}
	}
}

func saveProductCmd(client *api.Client, id int, in model.ProductInput) tea.Cmd {
	return func() tea.Msg {
		if id > 0 {
			product, err := client.UpdateProduct(context.Background(), id, in)
			return productSavedMsg{product: product, err: err}
		}
		product, err := client.CreateProduct(context.Background(), in)
		return productSavedMsg{product: product, created: true, err: err}
	}
}

func deleteProductCmd(client *api.Client, id int) tea.Cmd {
	return func() tea.Msg {
		err := client.DeleteProduct(context.Background(), id)
		return productDeletedMsg{id: id, err: err}
	}
}

func (p productsPanel) update(msg tea.Msg) (productsPanel, tea.Cmd) {
	switch msg := msg.(type) {
	case productsLoadedMsg:
		p.loading = false
		if msg.err != nil {
			// Prior rows stay; the failure is already in the diagnostic log.
			p.status = "product list refresh failed"
			p.statErr = true
			return p, nil
		}
		p.products = msg.products
		if p.cursor > len(p.products)-1 {
			p.cursor = maxInt(len(p.products)-1, 0)
		}
		return p, nil
	case productSavedMsg:
		if msg.err != nil {
			// The modal stays open with the error; nothing was mutated.
			if p.form != nil {
				p.form.Error = msg.err.Error()
				p.form.Saving = false
			}
			return p, nil
		}
		p.mode = productsModeBrowse
		p.form = nil
		if msg.created {
			p.status = "saved product: " + msg.product.Name
		} else {
			p.status = "saved changes: " + msg.product.Name
		}
		p.statErr = false
		p.loading = true
		return p, p.load()
	case productDeletedMsg:
		if msg.err != nil {
			p.status = "error: " + msg.err.Error()
			p.statErr = true
			p.mode = productsModeBrowse
			return p, nil
		}
		p.mode = productsModeBrowse
		p.status = fmt.Sprintf("deleted product #%d", msg.id)
		p.statErr = false
		p.loading = true
		return p, p.load()
	}

	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return p, nil
	}
	switch p.mode {
	case productsModeForm:
		return p.updateForm(keyMsg)
	case productsModeConfirmDelete:
		return p.updateConfirmDelete(keyMsg)
	default:
		return p.updateBrowse(keyMsg)
	}
}

func (p productsPanel) updateBrowse(msg tea.KeyMsg) (productsPanel, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if p.cursor > 0 {
			p.cursor--
		}
	case "down", "j":
		if p.cursor < len(p.products)-1 {
			p.cursor++
		}
	case "n":
		p.mode = productsModeForm
		p.form = newProductForm(nil, p.width)
		p.status = ""
	case "enter", "e":
		if len(p.products) == 0 {
			p.status = "no products yet; press n to add one"
			p.statErr = false
			return p, nil
		}
		selected := p.products[p.cursor]
		p.mode = productsModeForm
		p.form = newProductForm(&selected, p.width)
		p.status = ""
	case "d":
		if len(p.products) == 0 {
			return p, nil
		}
		selected := p.products[p.cursor]
		p.mode = productsModeConfirmDelete
		p.confirmID = selected.ID
		p.confirmName = selected.Name
	case "r":
		p.loading = true
		return p, p.load()
	}
	return p, nil
}

func (p productsPanel) updateForm(msg tea.KeyMsg) (productsPanel, tea.Cmd) {
	if p.form == nil {
		p.mode = productsModeBrowse
		return p, nil
	}
	if p.form.Saving {
		return p, nil
	}

	switch msg.String() {
	case "esc":
		p.mode = productsModeBrowse
		p.form = nil
		p.status = "edit cancelled"
		p.statErr = false
		return p, nil
	case "up", "shift+tab":
		p.form.commitInput()
		if p.form.Index > 0 {
			p.form.Index--
		}
		p.form.loadFieldIntoInput()
		return p, nil
	case "down", "tab":
		p.form.commitInput()
		if p.form.Index < len(p.form.Fields)-1 {
			p.form.Index++
		}
		p.form.loadFieldIntoInput()
		return p, nil
	case "enter", "ctrl+s":
		p.form.commitInput()
		if p.form.Index < len(p.form.Fields)-1 && msg.String() != "ctrl+s" {
			p.form.Index++
			p.form.loadFieldIntoInput()
			return p, nil
		}
		in, err := p.form.toInput()
		if err != nil {
			p.form.Error = err.Error()
			return p, nil
		}
		p.form.Error = ""
		p.form.Saving = true
		return p, saveProductCmd(p.client, p.form.ID, in)
	}

	var cmd tea.Cmd
	p.form.Input, cmd = p.form.Input.Update(msg)
	p.form.Fields[p.form.Index].Value = p.form.Input.Value()
	return p, cmd
}

func (p productsPanel) updateConfirmDelete(msg tea.KeyMsg) (productsPanel, tea.Cmd) {
	switch msg.String() {
	case "esc", "n":
		p.mode = productsModeBrowse
		p.status = "delete cancelled"
		p.statErr = false
		return p, nil
	case "y", "enter":
		if p.confirmID <= 0 {
			p.mode = productsModeBrowse
			return p, nil
		}
		return p, deleteProductCmd(p.client, p.confirmID)
	}
	return p, nil
}

func (p productsPanel) view(width, height int) string {
	switch p.mode {
	case productsModeForm:
		return p.viewForm(width)
	case productsModeConfirmDelete:
		return p.viewConfirmDelete(width, height)
	default:
		return p.viewBrowse(width, height)
	}
}

func (p productsPanel) viewBrowse(width, height int) string {
	hints := mutedStyle.Render("up/down: move | enter/e: edit | n: new | d: delete | r: refresh")

	lines := make([]string, 0, len(p.products)+3)
	lines = append(lines, mutedStyle.Render(fmt.Sprintf("%-28s %-12s %10s %5s  %s", "NAME", "SKU", "PRICE", "QTY", "STOCK")))
	if p.loading && len(p.products) == 0 {
		lines = append(lines, mutedStyle.Render("loading products..."))
	}
	if !p.loading && len(p.products) == 0 {
		lines = append(lines, mutedStyle.Render("No products yet. Press n to add one."))
	}

	maxRows := clampInt(height-10, 4, 24)
	start, end := listWindow(len(p.products), p.cursor, maxRows)
	if start > 0 {
		lines = append(lines, mutedStyle.Render("..."))
	}
	for i := start; i < end; i++ {
		prod := p.products[i]
		price := prod.Price.String()
		if price == "" {
			price = "-"
		}
		row := fmt.Sprintf("%-28s %-12s %10s %5d  %s",
			truncateRunes(prod.Name, 28),
			truncateRunes(prod.SKU, 12),
			price,
			prod.Quantity,
			stockBadge(prod.Quantity),
		)
		if i == p.cursor {
			plain := fmt.Sprintf("%-28s %-12s %10s %5d  %s",
				truncateRunes(prod.Name, 28), truncateRunes(prod.SKU, 12), price, prod.Quantity, model.StockLevel(prod.Quantity))
			row = selStyle.Width(maxInt(width-6, 10)).Render(truncateRunes(plain, maxInt(width-8, 10)))
		}
		lines = append(lines, row)
	}
	if end < len(p.products) {
		lines = append(lines, mutedStyle.Render("..."))
	}

	body := panelStyle.Width(maxInt(width-2, 40)).Render(strings.Join(lines, "\n"))
	return lipgloss.JoinVertical(lipgloss.Left, hints, body, statusLine(width, p.status, p.statErr))
}

func (p productsPanel) viewForm(width int) string {
	if p.form == nil {
		return ""
	}
	header := titleStyle.Render(p.form.Title)
	hints := mutedStyle.Render("tab/shift+tab or up/down: move | enter: next/save | ctrl+s: save | esc: cancel")

	lines := make([]string, 0, len(p.form.Fields)+4)
	for i, f := range p.form.Fields {
		prefix := "  "
		if i == p.form.Index {
			prefix = "> "
		}
		display := strings.TrimSpace(f.Value)
		if display == "" {
			display = mutedStyle.Render("(empty)")
		}
		lines = append(lines, wrapOrTrim(fmt.Sprintf("%s%s: %s", prefix, f.Label, display), maxInt(width-6, 20)))
	}

	curr := p.form.currentField()
	inputLabel := fmt.Sprintf("\n%s\n", curr.Label)
	inputHelp := ""
	if strings.TrimSpace(curr.Help) != "" {
		inputHelp = mutedStyle.Render(curr.Help) + "\n"
	}
	status := ""
	if p.form.Saving {
		status = mutedStyle.Render("\nSaving...")
	}
	if strings.TrimSpace(p.form.Error) != "" {
		status = "\n" + errorStyle.Render(p.form.Error)
	}

	panel := panelStyle.Width(maxInt(width-2, 40)).Render(strings.Join(lines, "\n") + inputLabel + inputHelp + p.form.Input.View() + status)
	return lipgloss.JoinVertical(lipgloss.Left, header, hints, panel)
}

func (p productsPanel) viewConfirmDelete(width, height int) string {
	text := fmt.Sprintf(
		"Delete product '%s'?\n\nThis removes it from the remote catalog.\n\nPress y or Enter to confirm, n or Esc to cancel.",
		p.confirmName,
	)
	boxW := clampInt(width-8, 36, 80)
	boxH := clampInt(height-8, 8, 12)
	panel := panelStyle.Width(boxW).Height(boxH).Render(text)
	return lipgloss.Place(maxInt(width, boxW), maxInt(height-4, boxH), lipgloss.Center, lipgloss.Center, panel)
}

type productField struct {
	Key      string
	Label    string
	Help     string
	Value    string
	Required bool
}

type productForm struct {
	ID     int // 0 means create
	Title  string
	Fields []productField
	Index  int
	Input  textinput.Model
	Error  string
	Saving bool
}

func newProductForm(existing *model.Product, width int) *productForm {
	f := &productForm{}
	if existing == nil {
		f.Title = "New Product"
		f.Fields = []productField{
			{Key: "name", Label: "Name", Required: true},
			{Key: "sku", Label: "SKU", Required: true},
			{Key: "description", Label: "Description", Help: "Optional"},
			{Key: "price", Label: "Price", Help: "Decimal >= 0", Value: "0"},
			{Key: "quantity", Label: "Quantity", Help: "Integer >= 0", Value: "0"},
		}
	} else {
		f.ID = existing.ID
		f.Title = "Edit Product: " + existing.Name
		price := existing.Price.String()
		if price == "" {
			price = "0"
		}
		f.Fields = []productField{
			{Key: "name", Label: "Name", Required: true, Value: existing.Name},
			{Key: "sku", Label: "SKU", Required: true, Value: existing.SKU},
			{Key: "description", Label: "Description", Help: "Optional", Value: existing.Description},
			{Key: "price", Label: "Price", Help: "Decimal >= 0", Value: price},
			{Key: "quantity", Label: "Quantity", Help: "Integer >= 0", Value: strconv.Itoa(existing.Quantity)},
		}
	}

	input := textinput.New()
	input.Prompt = "> "
	input.CharLimit = 1024
	input.Width = clampInt(width-8, 20, 120)
	f.Input = input
	f.loadFieldIntoInput()
	f.Input.Focus()
	return f
}

func (f *productForm) currentField() productField {
	if len(f.Fields) == 0 {
		return productField{}
	}
	if f.Index < 0 {
		f.Index = 0
	}
	if f.Index >= len(f.Fields) {
		f.Index = len(f.Fields) - 1
	}
	return f.Fields[f.Index]
}

func (f *productForm) commitInput() {
	if f == nil || len(f.Fields) == 0 {
		return
	}
	f.Fields[f.Index].Value = strings.TrimSpace(f.Input.Value())
}

func (f *productForm) loadFieldIntoInput() {
	if f == nil || len(f.Fields) == 0 {
		return
	}
	f.Input.SetValue(f.Fields[f.Index].Value)
	f.Input.CursorEnd()
}

func (f *productForm) toInput() (model.ProductInput, error) {
	vals := make(map[string]string, len(f.Fields))
	for _, field := range f.Fields {
		v := strings.TrimSpace(field.Value)
		if field.Required && v == "" {
			return model.ProductInput{}, fmt.Errorf("%s is required", strings.ToLower(field.Label))
		}
		vals[field.Key] = v
	}

	price := 0.0
	if raw := vals["price"]; raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return model.ProductInput{}, fmt.Errorf("price must be a number, got %q", raw)
		}
		price = v
	}
	quantity := 0
	if raw := vals["quantity"]; raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil {
			return model.ProductInput{}, fmt.Errorf("quantity must be an integer, got %q", raw)
		}
		quantity = v
	}

	in := model.ProductInput{
		Name:     vals["name"],
		SKU:      vals["sku"],
		Price:    price,
		Quantity: quantity,
	}
	if desc := vals["description"]; desc != "" {
		in.Description = &desc
	}
	if err := in.Validate(); err != nil {
		return model.ProductInput{}, err
	}
	return in, nil
}
