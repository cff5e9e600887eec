package assessment

import "sync"

var (
	defaultOnce sync.Once
	defaultBank *Bank
)

// Default returns the built-in IoT Security Engineering bank. It is built
// once and shared; callers never see a mutable view of it.
func Default() *Bank {
	defaultOnce.Do(func() {
		b, err := NewBank(defaultSections())
		if err != nil {
			panic("assessment: built-in bank is invalid: " + err.Error())
		}
		defaultBank = b
	})
	return defaultBank
}

func psych(id, text, sub, construct string) Question {
	return Question{
		ID: id, Text: text, Type: TypeLikert, Category: CategoryPsychometric,
		Subcategory: sub, Construct: construct,
	}
}

func tech(id, text, sub string, correct int, options ...string) Question {
	return Question{
		ID: id, Text: text, Type: TypeMultipleChoice, Category: CategoryTechnical,
		Subcategory: sub, Options: options, CorrectIndex: correct,
	}
}

func readiness(id, text string, typ QuestionType, dim Dimension, construct string) Question {
	return Question{
		ID: id, Text: text, Type: typ, Category: CategoryReadiness,
		Subcategory: string(dim), Construct: construct, Dimension: dim,
	}
}

func defaultSections() []Section {
	return []Section{
		{
			ID:          "introduction",
			Title:       "Introduction & Overview",
			Description: "Learn about IoT Security Engineering and what this assessment covers",
			TimeMinutes: 3,
		},
		{
			ID:          "psychometric",
			Title:       "Personality & Interest Assessment",
			Description: "Evaluate your psychological fit for IoT Security Engineering",
			TimeMinutes: 8,
			Questions: []Question{
				psych("psych_1", "I enjoy working with security protocols for connected devices and embedded systems.", "interest", "domain_interest"),
				psych("psych_2", "I prefer structured problem-solving over open-ended creative tasks.", "personality", "conscientiousness"),
				psych("psych_3", "I am curious about how hackers might exploit IoT devices and networks.", "interest", "security_mindset"),
				psych("psych_4", "I enjoy analyzing complex technical systems to find potential vulnerabilities.", "personality", "analytical_thinking"),
				psych("psych_5", "I am motivated more by solving challenging problems than by external rewards.", "motivation", "intrinsic_motivation"),
				psych("psych_6", "I pay close attention to details, especially when it comes to security configurations.", "personality", "attention_to_detail"),
				psych("psych_7", "I am comfortable working in environments where threats and technologies constantly evolve.", "adaptability", "change_tolerance"),
				psych("psych_8", "I find satisfaction in protecting systems and data from cyber threats.", "motivation", "protective_motivation"),
			},
		},
		{
			ID:          "technical",
			Title:       "Technical Aptitude & Knowledge",
			Description: "Test your technical skills and foundational knowledge",
			TimeMinutes: 12,
			Questions: []Question{
				tech("tech_1", "What is the binary representation of the decimal number 15?", "fundamentals", 0,
					"1111", "1011", "1101", "1001"),
				tech("tech_2", "Which protocol is commonly used for lightweight messaging in IoT devices?", "iot_protocols", 1,
					"HTTP", "MQTT", "FTP", "SMTP"),
				tech("tech_3", `In IoT security, what does "device authentication" primarily ensure?`, "security_concepts", 1,
					"The device can connect to any network",
					"The device identity is verified before network access",
					"The device has the latest firmware",
					"The device uses encryption"),
				tech("tech_4", "Which of the following is a common vulnerability in IoT devices?", "vulnerabilities", 0,
					"Default passwords",
					"Encrypted communications",
					"Regular updates",
					"Strong authentication"),
				tech("tech_5", "What is the primary purpose of a firewall in IoT network security?", "network_security", 1,
					"To increase network speed",
					"To control traffic between networks",
					"To store device data",
					"To update device firmware"),
				tech("tech_6", "If you found an IoT device sending unencrypted data, what would be your first concern?", "threat_assessment", 1,
					"Device performance",
					"Data confidentiality and integrity",
					"Network bandwidth",
					"Power consumption"),
			},
		},
		{
			ID:          "wiscar",
			Title:       "WISCAR Readiness Analysis",
			Description: "Comprehensive evaluation of your readiness across six key dimensions",
			TimeMinutes: 10,
			Questions: []Question{
				readiness("will_1", "I am committed to pursuing a career in IoT security regardless of initial challenges.", TypeLikert, DimensionWill, "persistence"),
				readiness("will_2", "I would continue learning IoT security even if progress feels slow initially.", TypeLikert, DimensionWill, "determination"),
				readiness("interest_1", "I actively seek out news and articles about IoT security threats and solutions.", TypeLikert, DimensionInterest, "curiosity"),
				readiness("interest_2", "I find IoT security topics more engaging than other technology areas.", TypeLikert, DimensionInterest, "passion"),
				readiness("skill_1", "Rate your current understanding of network security principles (1-5)", TypeScale, DimensionSkill, "current_knowledge"),
				readiness("skill_2", "Rate your programming skills in languages like Python or C (1-5)", TypeScale, DimensionSkill, "programming"),
				readiness("cognitive_1", "I can quickly identify patterns and relationships in complex security data.", TypeLikert, DimensionCognitive, "pattern_recognition"),
				readiness("cognitive_2", "I enjoy solving logical puzzles and analytical problems.", TypeLikert, DimensionCognitive, "analytical_ability"),
				readiness("ability_1", "I adapt quickly when learning new security tools and technologies.", TypeLikert, DimensionAbility, "learning_agility"),
				readiness("ability_2", "I actively seek feedback to improve my technical skills.", TypeLikert, DimensionAbility, "growth_mindset"),
				readiness("real_world_1", "My career goals align with working in cybersecurity and IoT protection.", TypeLikert, DimensionRealWorld, "career_alignment"),
				readiness("real_world_2", "I understand the day-to-day responsibilities of an IoT Security Engineer.", TypeLikert, DimensionRealWorld, "role_understanding"),
			},
		},
	}
}
