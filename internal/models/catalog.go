package models

// Book — позиция каталога: книга из новинок, поиска или жанра.
type Book struct {
	Title       string `json:"title"`
	Author      string `json:"author"`
	Link        string `json:"link"`
	Image       string `json:"image"`
	Slug        string `json:"slug,omitempty"`
	Date        string `json:"date,omitempty"`
	Genre       string `json:"genre,omitempty"`
	Description string `json:"description,omitempty"`
}

// Genre — жанр с количеством книг и slug для навигации.
type Genre struct {
	Name      string `json:"name"`
	Slug      string `json:"slug"`
	URL       string `json:"url,omitempty"`
	BookCount int    `json:"book_count"`
}

// Magazine — выпуск журнала из раздела журналов.
type Magazine struct {
	ID       int64  `json:"id"`
	Title    string `json:"title"`
	Image    string `json:"image"`
	Issue    string `json:"issue"`
	Date     string `json:"date"`
	Category string `json:"category"`
	Link     string `json:"link,omitempty"`
}

// GenreBooks — страница книг жанра с пагинацией.
type GenreBooks struct {
	Genre       Genre  `json:"genre"`
	Books       []Book `json:"books"`
	CurrentPage int    `json:"current_page"`
	TotalPages  int    `json:"total_pages"`
}

// BookSection, GenreSection, MagazineSection — независимые секции
// дашборда. Ошибка одной секции не блокирует остальные, поэтому
// каждая несёт собственный текст ошибки.
type BookSection struct {
	Items []Book `json:"items"`
	Err   string `json:"error,omitempty"`
}

type GenreSection struct {
	Items []Genre `json:"items"`
	Err   string `json:"error,omitempty"`
}

type MagazineSection struct {
	Items []Magazine `json:"items"`
	Err   string `json:"error,omitempty"`
}

// Dashboard — агрегированные данные дашборда, собираемые параллельно.
type Dashboard struct {
	NewReleases BookSection     `json:"new_releases"`
	Genres      GenreSection    `json:"genres"`
	Magazines   MagazineSection `json:"magazines"`
}
