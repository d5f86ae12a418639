package reference

import "github.com/yourusername/early-innings/internal/models"

func era(v float64) *float64 { return &v }

var defaultTeams = []models.Team{
	{Name: "Arizona Diamondbacks", Abbreviation: "ARI", Stadium: "Chase Field"},
	{Name: "Atlanta Braves", Abbreviation: "ATL", Stadium: "Truist Park"},
	{Name: "Baltimore Orioles", Abbreviation: "BAL", Stadium: "Oriole Park at Camden Yards"},
	{Name: "Boston Red Sox", Abbreviation: "BOS", Stadium: "Fenway Park"},
	{Name: "Chicago Cubs", Abbreviation: "CHC", Stadium: "Wrigley Field"},
	{Name: "Chicago White Sox", Abbreviation: "CWS", Stadium: "Rate Field"},
	{Name: "Cincinnati Reds", Abbreviation: "CIN", Stadium: "Great American Ball Park"},
	{Name: "Cleveland Guardians", Abbreviation: "CLE", Stadium: "Progressive Field"},
	{Name: "Colorado Rockies", Abbreviation: "COL", Stadium: "Coors Field"},
	{Name: "Detroit Tigers", Abbreviation: "DET", Stadium: "Comerica Park"},
	{Name: "Houston Astros", Abbreviation: "HOU", Stadium: "Minute Maid Park"},
	{Name: "Kansas City Royals", Abbreviation: "KC", Stadium: "Kauffman Stadium"},
	{Name: "Los Angeles Angels", Abbreviation: "LAA", Stadium: "Angel Stadium"},
	{Name: "Los Angeles Dodgers", Abbreviation: "LAD", Stadium: "Dodger Stadium"},
	{Name: "Miami Marlins", Abbreviation: "MIA", Stadium: "loanDepot park"},
	{Name: "Milwaukee Brewers", Abbreviation: "MIL", Stadium: "American Family Field"},
	{Name: "Minnesota Twins", Abbreviation: "MIN", Stadium: "Target Field"},
	{Name: "New York Mets", Abbreviation: "NYM", Stadium: "Citi Field"},
	{Name: "New York Yankees", Abbreviation: "NYY", Stadium: "Yankee Stadium"},
	{Name: "Athletics", Abbreviation: "OAK", Stadium: "Oakland Coliseum"},
	{Name: "Philadelphia Phillies", Abbreviation: "PHI", Stadium: "Citizens Bank Park"},
	{Name: "Pittsburgh Pirates", Abbreviation: "PIT", Stadium: "PNC Park"},
	{Name: "San Diego Padres", Abbreviation: "SD", Stadium: "Petco Park"},
	{Name: "San Francisco Giants", Abbreviation: "SF", Stadium: "Oracle Park"},
	{Name: "Seattle Mariners", Abbreviation: "SEA", Stadium: "T-Mobile Park"},
	{Name: "St. Louis Cardinals", Abbreviation: "STL", Stadium: "Busch Stadium"},
	{Name: "Tampa Bay Rays", Abbreviation: "TB", Stadium: "Tropicana Field"},
	{Name: "Texas Rangers", Abbreviation: "TEX", Stadium: "Globe Life Field"},
	{Name: "Toronto Blue Jays", Abbreviation: "TOR", Stadium: "Rogers Centre"},
	{Name: "Washington Nationals", Abbreviation: "WSH", Stadium: "Nationals Park"},
}

// Higher = more hitter-friendly. Stadiums missing from this table are neutral.
var defaultBallparkFactors = map[string]float64{
	"Coors Field":                 1.3,
	"Great American Ball Park":    1.2,
	"Citizens Bank Park":          1.15,
	"Yankee Stadium":              1.1,
	"Fenway Park":                 1.1,
	"Wrigley Field":               1.05,
	"Chase Field":                 1.05,
	"Globe Life Field":            1.0,
	"Truist Park":                 1.0,
	"Minute Maid Park":            1.0,
	"Kauffman Stadium":            0.95,
	"Dodger Stadium":              0.95,
	"Nationals Park":              0.95,
	"Rogers Centre":               0.95,
	"Angel Stadium":               0.95,
	"Target Field":                0.95,
	"Comerica Park":               0.9,
	"PNC Park":                    0.9,
	"Busch Stadium":               0.9,
	"loanDepot park":              0.9,
	"Oracle Park":                 0.85,
	"Petco Park":                  0.85,
	"T-Mobile Park":               0.85,
	"Oakland Coliseum":            0.85,
	"Tropicana Field":             0.85,
	"Oriole Park at Camden Yards": 0.95,
	"Progressive Field":           0.95,
	"American Family Field":       1.05,
	"Citi Field":                  0.95,
	"Rate Field":                  1.05,
}

var defaultPitchers = []models.Pitcher{
	{Name: "Aaron Nola", Team: "Philadelphia Phillies", ERA: era(3.25)},
	{Name: "Zack Wheeler", Team: "Philadelphia Phillies", ERA: era(2.98)},
	{Name: "Cristopher Sánchez", Team: "Philadelphia Phillies", ERA: era(3.44)},
	{Name: "Taijuan Walker", Team: "Philadelphia Phillies", ERA: era(4.38)},
	{Name: "Ranger Suárez", Team: "Philadelphia Phillies", ERA: era(3.12)},

	{Name: "Logan Webb", Team: "San Francisco Giants", ERA: era(3.25)},
	{Name: "Jordan Hicks", Team: "San Francisco Giants", ERA: era(3.78)},
	{Name: "Kyle Harrison", Team: "San Francisco Giants", ERA: era(4.15)},
	{Name: "Robbie Ray", Team: "San Francisco Giants", ERA: era(3.71)},
	{Name: "Blake Snell", Team: "San Francisco Giants", ERA: era(3.22)},

	{Name: "Luis Castillo", Team: "Seattle Mariners", ERA: era(3.14)},
	{Name: "George Kirby", Team: "Seattle Mariners", ERA: era(3.35)},
	{Name: "Logan Gilbert", Team: "Seattle Mariners", ERA: era(3.73)},
	{Name: "Bryce Miller", Team: "Seattle Mariners", ERA: era(3.92)},
	{Name: "Bryan Woo", Team: "Seattle Mariners", ERA: era(3.63)},

	{Name: "Hunter Greene", Team: "Cincinnati Reds", ERA: era(4.12)},
	{Name: "Nick Lodolo", Team: "Cincinnati Reds", ERA: era(4.23)},
	{Name: "Frankie Montas", Team: "Cincinnati Reds", ERA: era(4.56)},
	{Name: "Nick Martinez", Team: "Cincinnati Reds", ERA: era(4.21)},

	{Name: "Corbin Burnes", Team: "Baltimore Orioles", ERA: era(3.12)},
	{Name: "Grayson Rodriguez", Team: "Baltimore Orioles", ERA: era(3.75)},
	{Name: "Dean Kremer", Team: "Baltimore Orioles", ERA: era(4.15)},
	{Name: "Cole Irvin", Team: "Baltimore Orioles", ERA: era(4.42)},
	{Name: "Tomoyuki Sugano", Team: "Baltimore Orioles"},

	{Name: "Shane Bieber", Team: "Cleveland Guardians", ERA: era(3.27)},
	{Name: "Tanner Bibee", Team: "Cleveland Guardians", ERA: era(3.91)},
	{Name: "Triston McKenzie", Team: "Cleveland Guardians", ERA: era(4.05)},
	{Name: "Gavin Williams", Team: "Cleveland Guardians", ERA: era(3.88)},
	{Name: "Logan Allen", Team: "Cleveland Guardians", ERA: era(4.12)},

	{Name: "Tarik Skubal", Team: "Detroit Tigers", ERA: era(3.25)},
	{Name: "Jack Flaherty", Team: "Detroit Tigers", ERA: era(3.85)},
	{Name: "Casey Mize", Team: "Detroit Tigers", ERA: era(4.12)},
	{Name: "Reese Olson", Team: "Detroit Tigers", ERA: era(3.92)},
	{Name: "Kenta Maeda", Team: "Detroit Tigers", ERA: era(4.23)},

	{Name: "Cole Ragans", Team: "Kansas City Royals", ERA: era(3.47)},
	{Name: "Seth Lugo", Team: "Kansas City Royals", ERA: era(3.57)},
	{Name: "Brady Singer", Team: "Kansas City Royals", ERA: era(4.11)},
	{Name: "Michael Wacha", Team: "Kansas City Royals", ERA: era(4.25)},
	{Name: "Michael Lorenzen", Team: "Kansas City Royals"},

	{Name: "Mitch Keller", Team: "Pittsburgh Pirates", ERA: era(3.95)},
	{Name: "Paul Skenes", Team: "Pittsburgh Pirates"},
	{Name: "Marco Gonzales", Team: "Pittsburgh Pirates", ERA: era(4.25)},
	{Name: "Martin Perez", Team: "Pittsburgh Pirates", ERA: era(4.45)},

	{Name: "MacKenzie Gore", Team: "Washington Nationals", ERA: era(4.05)},
	{Name: "Trevor Williams", Team: "Washington Nationals", ERA: era(4.46)},
	{Name: "Jake Irvin", Team: "Washington Nationals", ERA: era(4.35)},
	{Name: "Patrick Corbin", Team: "Washington Nationals", ERA: era(5.14)},
	{Name: "Mitchell Parker", Team: "Washington Nationals", ERA: era(4.25)},

	{Name: "Zac Gallen", Team: "Arizona Diamondbacks", ERA: era(3.47)},
	{Name: "Merrill Kelly", Team: "Arizona Diamondbacks", ERA: era(3.52)},
	{Name: "Eduardo Rodriguez", Team: "Arizona Diamondbacks", ERA: era(4.15)},
	{Name: "Brandon Pfaadt", Team: "Arizona Diamondbacks", ERA: era(4.22)},
	{Name: "Jordan Montgomery", Team: "Arizona Diamondbacks", ERA: era(3.75)},

	{Name: "Jesús Luzardo", Team: "Miami Marlins", ERA: era(3.58)},
	{Name: "Trevor Rogers", Team: "Miami Marlins", ERA: era(4.35)},
	{Name: "Ryan Weathers", Team: "Miami Marlins", ERA: era(4.75)},
	{Name: "Max Meyer", Team: "Miami Marlins", ERA: era(4.25)},
	{Name: "Edward Cabrera", Team: "Miami Marlins"},

	{Name: "Gerrit Cole", Team: "New York Yankees", ERA: era(3.15)},
	{Name: "Carlos Rodón", Team: "New York Yankees", ERA: era(3.75)},
	{Name: "Nestor Cortes", Team: "New York Yankees", ERA: era(4.05)},
	{Name: "Clarke Schmidt", Team: "New York Yankees", ERA: era(4.35)},
	{Name: "Will Warren", Team: "New York Yankees"},

	{Name: "Zach Eflin", Team: "Tampa Bay Rays", ERA: era(3.86)},
	{Name: "Shane Baz", Team: "Tampa Bay Rays", ERA: era(3.58)},
	{Name: "Taj Bradley", Team: "Tampa Bay Rays", ERA: era(4.19)},
	{Name: "Aaron Civale", Team: "Tampa Bay Rays", ERA: era(4.25)},
	{Name: "Zack Littell", Team: "Tampa Bay Rays", ERA: era(4.37)},

	{Name: "Brayan Bello", Team: "Boston Red Sox", ERA: era(4.24)},
	{Name: "Kutter Crawford", Team: "Boston Red Sox", ERA: era(4.04)},
	{Name: "Nick Pivetta", Team: "Boston Red Sox", ERA: era(4.42)},
	{Name: "Tanner Houck", Team: "Boston Red Sox", ERA: era(3.86)},
	{Name: "Sean Newcomb", Team: "Boston Red Sox", ERA: era(4.75)},

	{Name: "Garrett Crochet", Team: "Chicago White Sox", ERA: era(3.55)},
	{Name: "Erick Fedde", Team: "Chicago White Sox", ERA: era(4.45)},
	{Name: "Chris Flexen", Team: "Chicago White Sox", ERA: era(4.85)},
	{Name: "Jonathan Cannon", Team: "Chicago White Sox"},
	{Name: "Davis Martin", Team: "Chicago White Sox"},

	{Name: "Paul Blackburn", Team: "Athletics", ERA: era(4.43)},
	{Name: "JP Sears", Team: "Athletics", ERA: era(4.37)},
	{Name: "Ross Stripling", Team: "Athletics", ERA: era(4.75)},
	{Name: "Luis Medina", Team: "Athletics", ERA: era(4.85)},
	{Name: "Osvaldo Bido", Team: "Athletics", ERA: era(4.95)},

	{Name: "Sonny Gray", Team: "St. Louis Cardinals", ERA: era(3.58)},
	{Name: "Kyle Gibson", Team: "St. Louis Cardinals", ERA: era(4.35)},
	{Name: "Miles Mikolas", Team: "St. Louis Cardinals", ERA: era(4.45)},
	{Name: "Steven Matz", Team: "St. Louis Cardinals", ERA: era(4.25)},
	{Name: "Andre Pallante", Team: "St. Louis Cardinals"},

	{Name: "Kodai Senga", Team: "New York Mets", ERA: era(3.38)},
	{Name: "Luis Severino", Team: "New York Mets", ERA: era(4.15)},
	{Name: "Sean Manaea", Team: "New York Mets", ERA: era(4.24)},
	{Name: "Jose Quintana", Team: "New York Mets", ERA: era(4.35)},
	{Name: "Griffin Canning", Team: "New York Mets", ERA: era(4.75)},

	{Name: "Nathan Eovaldi", Team: "Texas Rangers", ERA: era(3.63)},
	{Name: "Jon Gray", Team: "Texas Rangers", ERA: era(4.15)},
	{Name: "Andrew Heaney", Team: "Texas Rangers", ERA: era(4.35)},
	{Name: "Dane Dunning", Team: "Texas Rangers", ERA: era(4.25)},
	{Name: "Kumar Rocker", Team: "Texas Rangers"},

	{Name: "Reid Detmers", Team: "Los Angeles Angels", ERA: era(4.12)},
	{Name: "Tyler Anderson", Team: "Los Angeles Angels", ERA: era(4.35)},
	{Name: "Patrick Sandoval", Team: "Los Angeles Angels", ERA: era(4.25)},
	{Name: "José Soriano", Team: "Los Angeles Angels", ERA: era(4.45)},
	{Name: "Jack Kochanowicz", Team: "Los Angeles Angels"},

	{Name: "Yoshinobu Yamamoto", Team: "Los Angeles Dodgers", ERA: era(3.15)},
	{Name: "Tyler Glasnow", Team: "Los Angeles Dodgers", ERA: era(3.25)},
	{Name: "Walker Buehler", Team: "Los Angeles Dodgers", ERA: era(3.45)},
	{Name: "James Paxton", Team: "Los Angeles Dodgers", ERA: era(4.15)},
	{Name: "Bobby Miller", Team: "Los Angeles Dodgers", ERA: era(3.85)},

	{Name: "Kyle Freeland", Team: "Colorado Rockies", ERA: era(4.85)},
	{Name: "Cal Quantrill", Team: "Colorado Rockies", ERA: era(4.75)},
	{Name: "Austin Gomber", Team: "Colorado Rockies", ERA: era(4.95)},
	{Name: "Ryan Feltner", Team: "Colorado Rockies", ERA: era(5.05)},
	{Name: "Germán Márquez", Team: "Colorado Rockies", ERA: era(4.65)},
}
