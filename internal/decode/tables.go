package decode

// Code maps for every coded field in the proposal database. A code is only
// meaningful together with its field name: "001" is "Yes" under
// recording_label but "Concrete" under roof_materials_label. The routing
// table at the bottom binds each field name to its map.

// yesNoMap handles "001"/"002", "1"/"2", and boolean formats.
var yesNoMap = map[string]string{
	"001":   "Yes",
	"002":   "No",
	"1":     "Yes",
	"2":     "No",
	"true":  "Yes",
	"false": "No",
}

var industryMap = map[string]string{
	"1":  "Jewellery & Gold",
	"2":  "Diamond & Precious Stones",
	"6":  "Money Services",
	"7":  "Luxury Watches",
	"13": "Pawnbrokers",
}

var businessTypeMap = map[string]string{
	"1":  "Jewellery Retailer",
	"2":  "Jewellery & Gold Manufacturer",
	"3":  "Jewellery & Gold Wholesaler",
	"5":  "Jewellery & Gold Bullion Distributor",
	"8":  "Diamond Dealers",
	"10": "Money Changer",
	"11": "Remittance Services",
	"12": "Luxury Good Retailer",
	"13": "Luxury Watch Retailer",
	"34": "Pawnbrokers",
	"35": "Precious Stones Dealers",
}

var premiseTypeMap = map[string]string{
	"001": "Office building",
	"002": "Shopping centre",
	"003": "Shop house",
	"004": "Others",
}

// Used for roof, wall, and floor materials.
var materialMap = map[string]string{
	"001": "Concrete",
	"002": "Tiled",
	"003": "Metal",
	"004": "Wood",
}

var cctvBackupMap = map[string]string{
	"001": "Real-time backup - remote",
	"002": "Real-time backup - on site only",
	"003": "Periodic backup - remote",
	"004": "Periodic backup - onsite",
	"005": "No backup",
	"006": "Others",
}

var cctvCapabilityMap = map[string]string{
	"001": "Motion detection",
	"002": "Night vision",
	"003": "Others",
}

var cctvRetentionMap = map[string]string{
	"001": "1 week",
	"002": "2 weeks",
	"003": "3 weeks",
	"004": "1 month",
	"005": "3 months",
	"006": "6 months",
	"007": "9 months",
	"008": "1 year",
	"009": "More than 1 year",
}

var doorAccessMap = map[string]string{
	"001": "Combinations",
	"002": "Finger print",
	"003": "Facial",
	"004": "Digital password",
	"005": "Key only",
	"006": "Others",
}

var doorMaterialMap = map[string]string{
	"001": "Steel",
	"002": "Wooden",
	"003": "Glass",
	"004": "Others",
}

var rearDoorMap = map[string]string{
	"001": "Steel",
	"002": "Wooden",
	"003": "Others",
}

var rollerShutterMap = map[string]string{
	"001": "Roller shutter",
	"002": "Iron grill",
	"003": "Others",
}

var alarmConnectionMap = map[string]string{
	"001": "Security company",
	"002": "Landlord security",
	"003": "Police",
	"004": "Senior management",
}

var alarmTypeMap = map[string]string{
	"001": "Door contacts",
	"002": "Roller shutter contacts",
	"003": "Infra-red beams",
	"004": "Ultrasonic detector",
	"005": "Motion detector",
	"006": "Seismic detector",
	"007": "Glass sensors",
	"008": "Portable panic button",
	"009": "Fixed type panic button",
	"010": "Others",
}

var safeGradeMap = map[string]string{
	"001": "Ungraded",
	"002": "Grade I",
	"003": "Grade II",
	"004": "Grade III",
	"005": "Grade IV",
	"006": "Grade V",
	"007": "Grade VI",
	"008": "Grade VII",
}

var keyCombinationMap = map[string]string{
	"001": "Key",
	"002": "Combination code",
	"003": "Both",
}

var showcaseThicknessMap = map[string]string{
	"001": "21 mm",
	"002": "17-19 mm",
	"003": "15 mm",
	"004": "11-13 mm",
	"005": "9-10 mm",
	"006": "Others",
}

var showcaseProtectionMap = map[string]string{
	"001": "Security glass",
	"002": "Laminated glass",
	"003": "Others",
}

var counterThicknessMap = map[string]string{
	"001": "19-21 mm",
	"002": "15-17 mm",
	"003": "12-14 mm",
	"004": "10-11 mm",
	"005": "6-9 mm",
	"006": "Others",
}

var counterProtectionMap = map[string]string{
	"001": "External vertical iron grilles and security glass",
	"002": "External vertical iron grilles and laminated glass",
	"003": "Internal lateral iron grilles and security glass",
	"004": "Internal lateral iron grilles and laminated",
	"005": "Security glass",
	"006": "Laminated glass",
}

var dwCounterProtectionMap = map[string]string{
	"001": "External vertical iron grilles and security glass",
	"002": "External vertical iron grilles and laminated glass",
	"003": "Internal lateral iron grilles and security glass",
	"004": "Internal lateral iron grilles and laminated",
	"005": "Security glass",
	"006": "Laminated glass",
	"007": "Others",
}

var rearCounterProtectionMap = map[string]string{
	"001": "Iron grilles",
	"002": "Drawer with keylocks",
	"003": "Wooden flaps with keylocks",
	"004": "Wooden flaps with latch locks",
	"005": "Others",
}

var policeDistanceMap = map[string]string{
	"001": "Less than 2 Km",
	"002": "Within 2-5 Kms",
	"003": "5-10 Kms",
	"004": "Within 10-25 Kms",
	"005": "More than 25 Kms",
}

var backgroundCheckMap = map[string]string{
	"001": "Contract in place + financial, criminal, social media checks once a year",
	"002": "Contract in place + criminal, social media checks once a year",
	"003": "Contract in place + Social media checks once a year",
	"004": "Contract in place",
}

var stockCheckMap = map[string]string{
	"001": "Daily",
	"002": "Weekly",
	"003": "Monthly",
	"004": "Less than 6 months",
	"005": "More than 6 months",
}

var recordsMap = map[string]string{
	"001": "Online",
	"002": "Offline",
}

var claimStatusMap = map[string]string{
	"001": "No claim within 3 years",
	"002": "Claims within the past 3 years",
}

var destinationAirportMap = map[string]string{
	"001": "Bangkok airport",
	"002": "Hong Kong airport",
	"003": "Kuala Lumpur airport",
	"004": "Singapore airport",
	"005": "Tokyo airport",
	"006": "Sydney airport",
	"007": "Melbourne airport",
	"008": "Jakarta airport",
	"009": "All others",
}

var exhibitionInsuranceMap = map[string]string{
	"001": "Exhibition site risk only",
	"002": "Exhibition site risk including transit to/from by professional carrier",
}

// passthroughFields hold free text or plain numbers and are never decoded.
var passthroughFields = map[string]struct{}{
	"premise_type_others_label":                       {},
	"roof_materials_others_label":                     {},
	"wall_materials_others_label":                     {},
	"floor_materials_others_label":                    {},
	"cctv_model_label":                                {},
	"cctv_brand_name_label":                           {},
	"type_of_backup_others_label":                     {},
	"additional_capability_others_label":              {},
	"door_access_others_label":                        {},
	"others_label":                                    {},
	"rear_door_others_label":                          {},
	"main_door_others_label":                          {},
	"inner_door_others_label":                         {},
	"alarm_brand_name_label":                          {},
	"alarm_model_label":                               {},
	"type_of_alarm_others_label":                      {},
	"name_of_cms_company_label":                       {},
	"safe_model_label":                                {},
	"safe_weight_label":                               {},
	"safe_brand_name_label":                           {},
	"time_locking_brand_label":                        {},
	"wall_showcases_are_protected_by_others_label":    {},
	"dw_counter_showcases_are_protected_by_others_label": {},
	"display_window_protected_by_others_label":        {},
	"rear_display_window_protected_by_others_label":   {},
	"display_window_form_title_label":                 {},
	"director_house_coverage_label":                   {},
	"fidelity_guarantee_insurance_label":              {},
	"fidelity_guarantee_total_staff_label":            {},
	"overseas_carrying_label":                         {},
	"sum_assured_limit_label":                         {},
	"public_exhibitions_label":                        {},
	"risk_location_address_label":                     {},
	"authorized_company_name_label":                   {},
	"description_label":                               {},
	"year_of_claim_label":                             {},
	"amount_of_claim_label":                           {},
	"business_name_label":                             {},
	"mobile_number_label":                             {},
	"mailing_address_label":                           {},
	"office_telephone_label":                          {},
	"person_in_charge_label":                          {},
	"correspondence_email_label":                      {},
	"business_registration_label":                     {},
	"property_label":                                  {},
	"risk_address_label":                              {},
	"maximum_value_kept_as_display_at_during_business_hours_aw_label":        {},
	"maximum_value_kept_as_display_at_during_business_hours_1ar_label":       {},
	"maximum_value_kept_as_display_at_during_business_hours_1pd_label":       {},
	"maximum_value_kept_as_display_at_during_business_hours_aws_label":       {},
	"maximum_value_kept_as_display_at_during_after_business_hours_aw_label":  {},
	"maximum_value_kept_as_display_at_during_after_business_hours_1ar_label": {},
	"maximum_value_kept_as_display_at_during_after_business_hours_1pd_label": {},
	"maximum_value_kept_as_display_at_during_after_business_hours_aws_label": {},
	"maximum_stock_in_premises_label":                 {},
	"value_of_stock_out_of_safe_label":                {},
	"maximum_stock_during_transit_label":              {},
	"maximum_cash_in_premises_label":                  {},
	"maximum_foreign_currency_label":                  {},
	"value_of_cash_in_premise_label":                  {},
	"value_of_pledged_stock_in_premise_label":         {},
	"value_of_non_pledged_stock_in_premise_label":     {},
	"maximum_stock_foreign_currency_in_premise_label": {},
	"maximum_stock_foreign_currency_in_transit_label": {},
	"value_of_stock_in_transit_label":                 {},
}

// fieldDecodeTable routes each coded field name to its exact decoder map.
// Lookup key is the field name, never the code.
var fieldDecodeTable = map[string]map[string]string{
	// Business identity
	"nature_of_business_label": businessTypeMap,
	"businesstype_id_label":    businessTypeMap,
	"industry_id_label":        industryMap,

	// Physical setup
	"premise_type_label":   premiseTypeMap,
	"roof_materials_label": materialMap,
	"wall_materials_label": materialMap,
	"floor_materials_label": materialMap,

	// CCTV
	"recording_label":                         yesNoMap,
	"type_of_back_up_label":                   cctvBackupMap,
	"cctv_maintenance_contract_label":         yesNoMap,
	"additional_capability_label":             cctvCapabilityMap,
	"retained_period_of_cctv_recording_label": cctvRetentionMap,

	// Door access
	"door_access_label":                 doorAccessMap,
	"rear_door_label":                   rearDoorMap,
	"main_door_details_label":           doorMaterialMap,
	"inner_door_details_label":          doorMaterialMap,
	"inner_door_iron_glass_label":       yesNoMap,
	"inner_door_iron_wooden_label":      yesNoMap,
	"main_door_roll_and_iron_wood_label": rollerShutterMap,
	"rear_door_roll_and_iron_wood_label": rollerShutterMap,
	"main_door_roll_and_iron_glass_label": rollerShutterMap,

	// Alarm
	"do_you_have_alarm_label":          yesNoMap,
	"connection_type_label":            alarmConnectionMap,
	"type_of_alarm_system_label":       alarmTypeMap,
	"under_maintenance_contract_label": yesNoMap,
	"central_monitoring_stations_label": yesNoMap,

	// Safe
	"safe_time_locking_label":           yesNoMap,
	"grade_label":                       safeGradeMap,
	"certified_label":                   yesNoMap,
	"key_combination_code_or_both_label": keyCombinationMap,
	"key_and_combination_code_held_by_separate_personnel_label": yesNoMap,

	// Strong room
	"do_you_have_a_strong_room_label": yesNoMap,
	"time_locking_label":              yesNoMap,

	// Display showcases
	"wall_showcase_thickness_label":       showcaseThicknessMap,
	"do_you_have_wall_showcase_label":     yesNoMap,
	"wall_showcases_are_protected_by_label": showcaseProtectionMap,

	// Display counters
	"counter_showcase_thickness_label":         counterThicknessMap,
	"do_you_have_counter_showcase_label":       yesNoMap,
	"counter_showcases_are_protected_by_label": counterProtectionMap,
	"rear_counter_showcase_are_protected_by_label": rearCounterProtectionMap,

	// Counter show case
	"thickness_of_counters_label":                 counterThicknessMap,
	"dw_counter_showcases_are_protected_by_label": dwCounterProtectionMap,

	// Display window
	"do_you_have_display_window_label":       yesNoMap,
	"display_window_protected_by_label":      showcaseProtectionMap,
	"display_window_thickness_label":         showcaseThicknessMap,
	"rear_display_window_protected_by_label": showcaseProtectionMap,
	"rear_display_window_thickness_label":    showcaseThicknessMap,

	// Transit and guards
	"usage_of_jaguar_transit_label":                   yesNoMap,
	"do_you_use_armoured_vehicle_label":               yesNoMap,
	"do_you_use_guards_at_premise_label":              yesNoMap,
	"installed_gps_tracker_in_transit_bags_label":     yesNoMap,
	"do_you_use_armed_guards_during_transit_label":    yesNoMap,
	"installed_gps_tracker_in_transit_vehicles_label": yesNoMap,

	// Records keeping
	"records_maintained_in_label": recordsMap,
	"do_you_keep_detailed_records_of_stock_movements_label": yesNoMap,

	// Additional details
	"three_piece_rule_label":                     yesNoMap,
	"the_nearest_police_station_label":           policeDistanceMap,
	"standard_operating_procedure_label":         yesNoMap,
	"background_checks_for_all_employees_label":  backgroundCheckMap,
	"how_often_is_the_stock_check_carried_out_label": stockCheckMap,

	// Add-on coverage
	"director_house_question_label":                   yesNoMap,
	"director_house_question_cctv_label":              yesNoMap,
	"director_house_question_safe_label":              yesNoMap,
	"director_house_question_burglar_system_label":    yesNoMap,
	"fidelity_guarantee_insurance_add_coverage_label": yesNoMap,
	"exhibtion_coverage_question_label":               yesNoMap,
	"outward_entrustment_question_label":              yesNoMap,
	"international_coverage_question_label":           yesNoMap,
	"exhibition_insurance_question_label":             exhibitionInsuranceMap,
	"destination_airport_label":                       destinationAirportMap,

	// Claim history
	"claim_history_label": claimStatusMap,

	// Shop lifting
	"shop_lifting_label": yesNoMap,
}

// classificationFields are routed to the business type and industry maps.
// A numeric code missing from those maps decodes to "Unknown (<code>)" so
// the failure is visible in rendered text instead of leaking a bare number.
var classificationFields = map[string]struct{}{
	"nature_of_business_label": {},
	"businesstype_id_label":    {},
	"industry_id_label":        {},
}
