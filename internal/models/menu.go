package models

// MenuItem - позиция меню. Справочные данные: загружаются один раз
// при старте процесса и никогда не мутируются
type MenuItem struct {
	ID       int     `json:"id"`
	Name     string  `json:"name"`
	Category string  `json:"category"` // Main, Starter, Side, Dessert, Drink
	Price    float64 `json:"price"`

	// Пищевая ценность
	Calories int     `json:"calories"`
	Protein  float64 `json:"protein"`
	Carbs    float64 `json:"carbs"`
	Fat      float64 `json:"fat"`
	Sugar    float64 `json:"sugar"`
}

// Меню ресторана (совпадает с меню на фронтенде)
var menuCatalog = []MenuItem{
	{ID: 1, Name: "Classic Burger", Category: "Main", Price: 12, Calories: 650, Protein: 35, Carbs: 45, Fat: 38, Sugar: 8},
	{ID: 2, Name: "Margherita Pizza", Category: "Main", Price: 15, Calories: 850, Protein: 28, Carbs: 95, Fat: 32, Sugar: 6},
	{ID: 3, Name: "Carbonara Pasta", Category: "Main", Price: 13, Calories: 720, Protein: 25, Carbs: 85, Fat: 28, Sugar: 4},
	{ID: 4, Name: "Caesar Salad", Category: "Starter", Price: 8, Calories: 320, Protein: 12, Carbs: 18, Fat: 22, Sugar: 3},
	{ID: 5, Name: "Tomato Soup", Category: "Starter", Price: 6, Calories: 180, Protein: 4, Carbs: 28, Fat: 6, Sugar: 12},
	{ID: 6, Name: "Grilled Steak", Category: "Main", Price: 25, Calories: 480, Protein: 52, Carbs: 2, Fat: 28, Sugar: 0},
	{ID: 7, Name: "Truffle Fries", Category: "Side", Price: 5, Calories: 420, Protein: 5, Carbs: 52, Fat: 22, Sugar: 1},
	{ID: 8, Name: "Gelato", Category: "Dessert", Price: 6, Calories: 280, Protein: 4, Carbs: 38, Fat: 12, Sugar: 28},
	{ID: 9, Name: "Tiramisu", Category: "Dessert", Price: 7, Calories: 450, Protein: 6, Carbs: 48, Fat: 26, Sugar: 32},
	{ID: 10, Name: "Craft Soda", Category: "Drink", Price: 3, Calories: 150, Protein: 0, Carbs: 38, Fat: 0, Sugar: 38},
	{ID: 11, Name: "Espresso", Category: "Drink", Price: 4, Calories: 5, Protein: 0, Carbs: 1, Fat: 0, Sugar: 0},
	{ID: 12, Name: "Wine Glass", Category: "Drink", Price: 9, Calories: 125, Protein: 0, Carbs: 4, Fat: 0, Sugar: 1},
}

// MenuItems возвращает копию меню (вызывающий не может испортить каталог)
func MenuItems() []MenuItem {
	items := make([]MenuItem, len(menuCatalog))
	copy(items, menuCatalog)
	return items
}

// GetMenuItem находит позицию меню по id
func GetMenuItem(id int) (MenuItem, bool) {
	for _, item := range menuCatalog {
		if item.ID == id {
			return item, true
		}
	}
	return MenuItem{}, false
}
