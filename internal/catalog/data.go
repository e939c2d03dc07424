package catalog

var defaultResorts = []Resort{
	{
		ID:            "bishoftu",
		Name:          "Kuriftu Resort & Spa Bishoftu",
		Address:       "Bishoftu, Ethiopia",
		Description:   "Nestled on the shores of Lake Bishoftu, this resort offers a serene escape just an hour from Addis Ababa.",
		Latitude:      8.7579,
		Longitude:     38.9959,
		Rating:        4.8,
		EssencePoints: 150,
		Amenities:     []string{"Spa", "Restaurant", "Pool", "Lake View", "Conference Facilities"},
	},
	{
		ID:            "bahirdar",
		Name:          "Kuriftu Resort & Spa Bahir Dar",
		Address:       "Bahir Dar, Ethiopia",
		Description:   "Located on the shores of Lake Tana, offering stunning views and access to the Blue Nile Falls.",
		Latitude:      11.5742,
		Longitude:     37.3614,
		Rating:        4.7,
		EssencePoints: 180,
		Amenities:     []string{"Spa", "Restaurant", "Pool", "Lake View", "Boat Tours"},
	},
	{
		ID:            "adama",
		Name:          "Kuriftu Resort & Spa Adama",
		Address:       "Adama, Ethiopia",
		Description:   "A luxurious retreat in the heart of Adama, perfect for weekend getaways and business retreats.",
		Latitude:      8.54,
		Longitude:     39.27,
		Rating:        4.6,
		EssencePoints: 130,
		Amenities:     []string{"Spa", "Restaurant", "Pool", "Conference Facilities", "Gym"},
	},
	{
		ID:            "diplomat",
		Name:          "Diplomat Restaurant by Kuriftu",
		Address:       "Addis Ababa, Ethiopia",
		Description:   "Experience fine Ethiopian and international cuisine in the heart of Addis Ababa.",
		Latitude:      9.0092,
		Longitude:     38.7645,
		Rating:        4.5,
		EssencePoints: 80,
		Amenities:     []string{"Fine Dining", "Private Events", "Cultural Shows", "Vegan Options"},
	},
	{
		ID:            "boston",
		Name:          "Boston Day Spa by Kuriftu",
		Address:       "Addis Ababa, Ethiopia",
		Description:   "Urban wellness sanctuary offering premium spa treatments and relaxation therapies.",
		Latitude:      9.0233,
		Longitude:     38.7472,
		Rating:        4.7,
		EssencePoints: 100,
		Amenities:     []string{"Massage", "Facial Treatments", "Sauna", "Steam Room", "Wellness Packages"},
	},
	{
		ID:            "entoto",
		Name:          "Entoto Kuriftu Park",
		Address:       "Entoto, Addis Ababa, Ethiopia",
		Description:   "Scenic mountain park with hiking trails, cultural experiences, and panoramic views of Addis Ababa.",
		Latitude:      9.0847,
		Longitude:     38.7633,
		Rating:        4.6,
		EssencePoints: 120,
		Amenities:     []string{"Hiking Trails", "Cultural Center", "Restaurant", "Viewpoints", "Adventure Activities"},
	},
}

var defaultActions = []Action{
	{ID: "resort-booking", Title: "Resort Stay", Description: "Book a stay at any Kuriftu Resort", Points: 100, Category: ActionBooking, Repeatable: true},
	{ID: "spa-booking", Title: "Spa Treatment", Description: "Book a spa treatment", Points: 50, Category: ActionBooking, Repeatable: true},
	{ID: "dining", Title: "Fine Dining", Description: "Dine at a Kuriftu restaurant", Points: 30, Category: ActionBooking, Repeatable: true},
	{ID: "share-passport", Title: "Share Journey", Description: "Share your Journey Passport on social media", Points: 5, Category: ActionEngagement},
	{ID: "feedback", Title: "Provide Feedback", Description: "Give detailed feedback about your experience", Points: 5, Category: ActionEngagement, Repeatable: true},
	{ID: "refer-friend", Title: "Refer a Friend", Description: "Refer a friend who makes a booking", Points: 20, Category: ActionReferral, Repeatable: true},
	{ID: "premium-subscription", Title: "Premium Subscription", Description: "Subscribe to Kuriftu Premium", Points: 50, Category: ActionPremium},
}

var defaultRewards = []Reward{
	{ID: "tote-bag", Title: "Kuriftu Tote Bag", Description: "Exclusive Kuriftu-branded tote bag", PointsCost: 50, Category: RewardItem, Available: true},
	{ID: "bike-rental", Title: "1-Hour Bike Rental", Description: "Free bike rental at any Kuriftu resort", PointsCost: 100, Category: RewardExperience, Available: true},
	{ID: "spa-discount", Title: "20% Off Spa Booking", Description: "Discount on your next spa treatment", PointsCost: 200, Category: RewardDiscount, Available: true},
	{ID: "free-drink", Title: "Free Local Drink", Description: "Complimentary traditional Ethiopian drink", PointsCost: 300, Category: RewardExperience, Available: true},
	{ID: "room-upgrade", Title: "Room Upgrade", Description: "Free upgrade to the next room category", PointsCost: 400, Category: RewardExclusive, Available: false},
	{ID: "experience-box", Title: "Kuriftu Experience Box", Description: "Limited edition box with Ethiopian treasures", PointsCost: 500, Category: RewardExclusive, Available: false},
}

var defaultEvents = []Event{
	{ID: "event1", Name: "Ethiopian Coffee Ceremony", ResortID: "bishoftu", Date: "2024-05-15", Description: "Experience the traditional Ethiopian coffee ceremony with local experts.", Points: 30, Price: "Free for guests"},
	{ID: "event2", Name: "Lake Tana Sunset Cruise", ResortID: "bahirdar", Date: "2024-05-20", Description: "Enjoy a scenic sunset cruise on Lake Tana with traditional music and refreshments.", Points: 45, Price: "1200 Birr"},
	{ID: "event3", Name: "Wellness Weekend Retreat", ResortID: "adama", Date: "2024-06-10", Description: "A full weekend of spa treatments, yoga, and wellness activities.", Points: 100, Price: "5000 Birr"},
}

var defaultItineraries = []Itinerary{
	{
		ID:            "itinerary1",
		Name:          "Ethiopian Heritage Tour",
		Duration:      "7 days",
		ResortIDs:     []string{"bishoftu", "bahirdar", "entoto"},
		Description:   "Explore Ethiopia's rich cultural heritage through historical sites and traditional experiences.",
		Highlights:    []string{"Coffee ceremony in Bishoftu", "Lake Tana monastery tour", "Entoto mountain hiking", "Traditional music and dance performances"},
		EssencePoints: 350,
	},
	{
		ID:            "itinerary2",
		Name:          "Wellness Escape",
		Duration:      "5 days",
		ResortIDs:     []string{"bishoftu", "boston"},
		Description:   "Rejuvenate your body and mind with spa treatments, yoga, and healthy cuisine.",
		Highlights:    []string{"Daily yoga sessions", "Traditional Ethiopian spa treatments", "Meditation by Lake Bishoftu", "Healthy Ethiopian cuisine workshops"},
		EssencePoints: 250,
	},
	{
		ID:            "itinerary3",
		Name:          "Culinary Journey",
		Duration:      "4 days",
		ResortIDs:     []string{"diplomat", "bishoftu", "adama"},
		Description:   "Discover the flavors of Ethiopia through cooking classes and dining experiences.",
		Highlights:    []string{"Ethiopian cooking class", "Coffee plantation tour", "Wine tasting in Adama", "Traditional dinner with local families"},
		EssencePoints: 200,
	},
}

var defaultVisits = []Visit{
	{ID: "visit1", ResortID: "bishoftu", Experience: ExperienceStay, Date: "2023-10-15", Points: 150},
	{ID: "visit2", ResortID: "bishoftu", Experience: ExperienceSpa, Date: "2023-10-16", Points: 75},
	{ID: "visit3", ResortID: "bahirdar", Experience: ExperienceDining, Date: "2023-11-20", Points: 50},
	{ID: "visit4", ResortID: "diplomat", Experience: ExperienceDining, Date: "2023-12-05", Points: 40},
	{ID: "visit5", ResortID: "boston", Experience: ExperienceSpa, Date: "2024-01-10", Points: 60},
}
